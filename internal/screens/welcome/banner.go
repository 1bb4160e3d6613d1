package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

const bannerArt = `
 ██╗   ██╗ █████╗ ████████╗  ██╗     ██╗   ██╗   ██╗██████╗
 ██║   ██║██╔══██╗╚══██╔══╝  ██║     ╚██╗ ██╔╝  ███║╚════██╗
 ██║   ██║███████║   ██║     ██║      ╚████╔╝   ╚██║ █████╔╝
 ╚██╗ ██╔╝██╔══██║   ██║     ██║       ╚██╔╝     ██║██╔═══╝
  ╚████╔╝ ██║  ██║   ██║     ███████╗   ██║      ██║███████╗
   ╚═══╝  ╚═╝  ╚═╝   ╚═╝     ╚══════╝   ╚═╝      ╚═╝╚══════╝`

const bannerCompact = "V Ậ T   L Ý   1 2"

// RenderBanner returns the banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 64 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 64 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
