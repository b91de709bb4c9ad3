package devops

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

// Static checks against the compose manifest; none of these need Docker.

func loadCompose(t *testing.T) map[string]any {
	t.Helper()
	root := findRepoRoot(t)
	b, err := os.ReadFile(filepath.Join(root, "docker-compose.yml"))
	if err != nil {
		t.Fatalf("read compose: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	services, ok := doc["services"].(map[string]any)
	if !ok {
		t.Fatalf("services missing or wrong type")
	}
	return services
}

// TestCompose_FrontEndsHaveHealthchecks verifies both serving processes are
// defined, listen on distinct published ports, and probe /health.
func TestCompose_FrontEndsHaveHealthchecks(t *testing.T) {
	services := loadCompose(t)
	ports := map[string]bool{}

	for _, name := range []string{"condensed", "condense-web"} {
		svc, ok := services[name].(map[string]any)
		if !ok {
			t.Fatalf("%s service missing", name)
		}
		hc, ok := svc["healthcheck"].(map[string]any)
		if !ok {
			t.Fatalf("%s healthcheck missing", name)
		}
		testCmd, _ := hc["test"].([]any)
		found := false
		for _, v := range testCmd {
			if s, ok := v.(string); ok && strings.Contains(s, "/health") {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s healthcheck must probe /health; test=%v", name, testCmd)
		}
		for _, p := range svc["ports"].([]any) {
			s, _ := p.(string)
			if ports[s] {
				t.Fatalf("published port %q used twice", s)
			}
			ports[s] = true
		}
	}
}

// TestCompose_NoCredentialInManifest guards the per-request credential
// model: no service may carry an API key through its environment.
func TestCompose_NoCredentialInManifest(t *testing.T) {
	credential := regexp.MustCompile(`(?i)(groq|api[_-]?key|token|secret)`)
	for name, raw := range loadCompose(t) {
		svc, _ := raw.(map[string]any)
		switch env := svc["environment"].(type) {
		case map[string]any:
			for k := range env {
				if credential.MatchString(k) {
					t.Fatalf("service %s carries credential-like variable %q", name, k)
				}
			}
		case []any:
			for _, e := range env {
				s, _ := e.(string)
				if key, _, ok := strings.Cut(s, "="); ok && credential.MatchString(key) {
					t.Fatalf("service %s carries credential-like variable %q", name, key)
				}
			}
		}
	}
}

// TestCompose_StubBehindDevProfile keeps the fake model endpoint out of
// default deployments.
func TestCompose_StubBehindDevProfile(t *testing.T) {
	services := loadCompose(t)
	stub, ok := services["llm-stub"].(map[string]any)
	if !ok {
		t.Fatalf("llm-stub service missing")
	}
	profiles, _ := stub["profiles"].([]any)
	found := false
	for _, p := range profiles {
		if s, _ := p.(string); s == "dev" {
			found = true
		}
	}
	if !found {
		t.Fatalf("llm-stub must sit behind the dev profile; profiles=%v", profiles)
	}
	hc, ok := stub["healthcheck"].(map[string]any)
	if !ok {
		t.Fatalf("llm-stub healthcheck missing")
	}
	testCmd, _ := hc["test"].([]any)
	found = false
	for _, v := range testCmd {
		if s, ok := v.(string); ok && strings.Contains(s, "/v1/models") {
			found = true
		}
	}
	if !found {
		t.Fatalf("llm-stub healthcheck must probe /v1/models; test=%v", testCmd)
	}
}

func findRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	// Walk up until we find go.mod
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	t.Fatalf("could not locate repo root with go.mod")
	return ""
}
