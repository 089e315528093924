package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certprep/internal/ui/theme"
)

const bannerArt = ` ██████╗███████╗██████╗ ████████╗██████╗ ██████╗ ███████╗██████╗
██╔════╝██╔════╝██╔══██╗╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██╔══██╗
██║     █████╗  ██████╔╝   ██║   ██████╔╝██████╔╝█████╗  ██████╔╝
██║     ██╔══╝  ██╔══██╗   ██║   ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
╚██████╗███████╗██║  ██║   ██║   ██║     ██║  ██║███████╗██║
 ╚═════╝╚══════╝╚═╝  ╚═╝   ╚═╝   ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝`

const bannerCompact = "C E R T P R E P"

// BannerWidth is the width of the full banner.
var BannerWidth = lipgloss.Width(bannerArt)

// RenderBanner returns the CERTPREP banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the banner.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
