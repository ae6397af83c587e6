package assets

import (
	"fmt"

	"newsroom/internal/config"
	"newsroom/internal/resilience/circuitbreaker"
)

// New builds the configured uploader wrapped in Guarded. localDir is
// non-empty when files must be served by the API (local provider).
func New(cfg config.AssetsConfig, publicBaseURL string) (up *Guarded, localDir string, err error) {
	var base Uploader
	switch cfg.Provider {
	case config.AssetsCloudinary:
		base, err = NewCloudinaryUploader(cfg)
	case config.AssetsLocal:
		var lu *LocalUploader
		lu, err = NewLocalUploader(cfg.LocalDir, publicBaseURL)
		if err == nil {
			base, localDir = lu, lu.Dir()
		}
	default:
		err = fmt.Errorf("unknown asset provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, "", err
	}

	bcfg := circuitbreaker.AssetHostConfig(cfg.BreakerMinRequests, cfg.BreakerFailureRatio, cfg.BreakerOpenTimeout)
	return NewGuarded(base, cfg.Provider, bcfg, cfg.UploadTimeout), localDir, nil
}
