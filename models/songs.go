package models

import "strings"

// SplitSongs parses newline-joined song text into a list, trimming each
// line and dropping blanks.
func SplitSongs(songs string) []string {
	list := []string{}
	for _, line := range strings.Split(songs, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			list = append(list, line)
		}
	}
	return list
}

// JoinSongs is the inverse of SplitSongs.
func JoinSongs(list []string) string {
	return strings.Join(list, "\n")
}

// FormatSong builds an "Artist - Title" line. Both parts are trimmed and
// must be non-empty.
func FormatSong(artist, title string) (string, bool) {
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	if artist == "" || title == "" {
		return "", false
	}
	return artist + " - " + title, true
}
