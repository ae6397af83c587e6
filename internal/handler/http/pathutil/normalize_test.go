package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/news", "/api/news"},
		{"/api/news/", "/api/news"},
		{"/api/news?page=2&limit=10", "/api/news"},
		{"/api/news/665f1c2ab1e4a3d9c0f1e2d3", "/api/news/:id"},
		{"/api/news/0b6c0c1e-8a43-4c55-9d0e-3c2f9a1b7e11", "/api/news/:id"},
		{"/api/news/665f1c2ab1e4a3d9c0f1e2d3/", "/api/news/:id"},
		{"/api/news/categories", "/api/news/categories"},
		{"/uploads/abc.png", "/uploads/:file"},
		{"/swagger/index.html", "/swagger/*"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/live", "/live"},
		{"/api/auth/token", "/api/auth/token"},
		{"/", "/"},
		{"/api/news/a/b", "/other"},
		{"/wp-login.php", "/other"},
		{"/x/4f3c2a", "/other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
