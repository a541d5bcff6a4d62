package types

// HTTPProbeConfig is the optional per-service probe configuration stored in
// services.config. Zero values fall back to a plain GET with no extra headers.
type HTTPProbeConfig struct {
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
}
