package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"tokenTTL":   "168h",
			"bcryptCost": 12,
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"countries": map[string]any{
			"geoJSONPath": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_TOKENTTL", want: "auth.tokenTTL"},
		{envKey: "AUTH_BCRYPTCOST", want: "auth.bcryptCost"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "COUNTRIES_GEOJSONPATH", want: "countries.geoJSONPath"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
