package assets

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultEngineEmoji backs any game that defines no emoji of its own.
const DefaultEngineEmoji = "🎯"

var faviconNames = []string{"favicon-96x96.png", "favicon.png", "favicon.svg", "favicon.ico"}

// EmojiDataURI renders an emoji as an inline SVG favicon. This is the final
// rung of every fallback cascade, so it never fails.
func EmojiDataURI(emoji string) string {
	if emoji == "" {
		emoji = DefaultEngineEmoji
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
		`<text y=".9em" font-size="90">` + emoji + `</text></svg>`
	escaped := strings.ReplaceAll(url.QueryEscape(svg), "+", "%20")
	return "data:image/svg+xml," + escaped
}

// CardImageSources returns the ordered candidate images for a game's selector
// card: the portrait card art, then the favicon variants, then the emoji data
// URI as the guaranteed last rung.
func CardImageSources(gameID, emoji string) []string {
	sources := []string{fmt.Sprintf("/games/%s/icons/game-card.webp", gameID)}
	for _, name := range faviconNames {
		sources = append(sources, fmt.Sprintf("/games/%s/favicon/%s", gameID, name))
	}
	for _, name := range faviconNames[1:] {
		sources = append(sources, fmt.Sprintf("/games/%s/icons/%s", gameID, name))
	}
	return append(sources, EmojiDataURI(emoji))
}

// FaviconSources returns the ordered candidate favicons for a game, ending in
// the emoji data URI.
func FaviconSources(gameID, emoji string) []string {
	var sources []string
	for _, name := range faviconNames {
		sources = append(sources, fmt.Sprintf("/games/%s/favicon/%s", gameID, name))
	}
	for _, name := range faviconNames[1:] {
		sources = append(sources, fmt.Sprintf("/games/%s/icons/%s", gameID, name))
	}
	return append(sources, EmojiDataURI(emoji))
}

// VoicesFor filters a game's voice lines down to one companion's set. Voice
// files live under /games/<id>/voices/<voice>/; an empty voice name matches
// everything.
func VoicesFor(g *GameAssets, voice string) []string {
	if voice == "" {
		return append([]string(nil), g.Voices...)
	}
	needle := "/voices/" + strings.ToLower(voice) + "/"
	var out []string
	for _, path := range g.Voices {
		if strings.Contains(strings.ToLower(path), needle) {
			out = append(out, path)
		}
	}
	return out
}
