package resolver

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-narrator/internal/entities"
	"github.com/KirkDiggler/rpg-narrator/internal/providers"
)

// Fallback icons used when image generation is unavailable
const (
	FallbackItemIcon      = "https://img.icons8.com/dotty/80/000000/box-important.png"
	FallbackWeaponIcon    = "https://img.icons8.com/dotty/80/000000/sword.png"
	FallbackArmorIcon     = "https://img.icons8.com/dotty/80/000000/body-armor.png"
	FallbackRingIcon      = "https://img.icons8.com/dotty/80/000000/ring.png"
	FallbackPartyIcon     = "https://img.icons8.com/ios-glyphs/90/ffffff/user-male-circle.png"
	FallbackEncounterIcon = "https://img.icons8.com/dotty/80/000000/monster-face.png"
)

// FallbackGearIcon returns the fallback icon for a gear kind
func FallbackGearIcon(kind entities.GearKind) string {
	switch kind {
	case entities.GearKindArmor:
		return FallbackArmorIcon
	case entities.GearKindRing:
		return FallbackRingIcon
	default:
		return FallbackWeaponIcon
	}
}

// icon generates one entity icon. Any failure yields the fallback.
func (a *applier) icon(ctx context.Context, name string, req providers.ImageRequest, fallback string) string {
	if a.images == nil {
		return fallback
	}

	url, err := a.images.Generate(ctx, req)
	if err != nil {
		slog.Warn("Icon generation failed, using fallback", "name", name, "error", err)
		return fallback
	}
	if url == "" {
		return fallback
	}
	return url
}
