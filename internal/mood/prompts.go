package mood

import "fmt"

func profilePrompt(text string, minArtists, minTracks int) string {
	return fmt.Sprintf(`Read the text below and extract:
- mood: the predominant emotion, one or two words, in the language of the text
- genre: the musical genre the person wants (or the one that best fits the mood)
- artist: at least %d artists that match, comma separated
- country: the country or market the music should come from, if any
Also suggest at least %d songs that fit.

Replace every space inside song and artist names with the character "%%".
Write each song as "<title>%%<artist>", for example "Fix%%You%%Coldplay".

Answer with a single JSON object and nothing else, with exactly these keys:
{"mood": string, "genre": string or null, "artist": string or null, "country": string or null, "tracks": [string]}

Text: %q`, minArtists, minTracks, text)
}

func titlePrompt(text string) string {
	return fmt.Sprintf(`Based on the mood, genre, artists and country described in the text below,
create a short, funny playlist title with at most %d characters.
Answer with the title only, on a single line, without quotes.

Text: %q`, maxTitleLen, text)
}
