package config

// SecurityConfig configures the response security headers.
type SecurityConfig struct {
	// CSPEnabled sends a Content-Security-Policy on every response.
	CSPEnabled bool `yaml:"csp_enabled"`
	// CSPReportOnly sends Content-Security-Policy-Report-Only instead, so
	// violations are reported without being enforced.
	CSPReportOnly bool `yaml:"csp_report_only"`
	// CSPReportURI is added as report-uri when set.
	CSPReportURI string `yaml:"csp_report_uri"`
	// HSTSMaxAge enables Strict-Transport-Security (seconds) when positive.
	// Only enable behind TLS.
	HSTSMaxAge int `yaml:"hsts_max_age"`
}

func defaultSecurity() SecurityConfig {
	return SecurityConfig{CSPEnabled: true}
}
