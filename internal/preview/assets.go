package preview

import "strings"

// PlaceholderImage is shown wherever an image reference is missing.
const PlaceholderImage = "/placeholder.svg"

// AssetResolver turns an opaque image reference into something displayable.
type AssetResolver interface {
	Resolve(ref string) string
}

// PlaceholderResolver keeps non-empty references and falls back to a placeholder.
type PlaceholderResolver struct {
	// Placeholder overrides PlaceholderImage when set
	Placeholder string
}

// Resolve implements AssetResolver
func (r PlaceholderResolver) Resolve(ref string) string {
	if strings.TrimSpace(ref) != "" {
		return ref
	}
	if r.Placeholder != "" {
		return r.Placeholder
	}
	return PlaceholderImage
}

// MapResolver looks references up in a table, deferring to Fallback for misses.
type MapResolver struct {
	Assets   map[string]string
	Fallback AssetResolver
}

// Resolve implements AssetResolver
func (r MapResolver) Resolve(ref string) string {
	if v, ok := r.Assets[ref]; ok {
		return v
	}
	if r.Fallback != nil {
		return r.Fallback.Resolve(ref)
	}
	return ref
}
