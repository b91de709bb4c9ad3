package youtube

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// pickTrack chooses the caption track best matching the preferred
// languages, trying manually authored tracks before speech-recognition
// ones.
func pickTrack(tracks []CaptionTrack, prefs []language.Tag) (CaptionTrack, error) {
	if len(tracks) == 0 {
		return CaptionTrack{}, errors.New("video has no caption tracks")
	}
	manual := make([]CaptionTrack, 0, len(tracks))
	auto := make([]CaptionTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.Kind == "asr" {
			auto = append(auto, t)
		} else {
			manual = append(manual, t)
		}
	}
	for _, group := range [][]CaptionTrack{manual, auto} {
		if t, ok := matchTrack(group, prefs); ok {
			return t, nil
		}
	}
	return CaptionTrack{}, fmt.Errorf("no caption track matches preferred languages")
}

func matchTrack(tracks []CaptionTrack, prefs []language.Tag) (CaptionTrack, bool) {
	if len(tracks) == 0 {
		return CaptionTrack{}, false
	}
	tags := make([]language.Tag, 0, len(tracks))
	idx := make([]int, 0, len(tracks))
	for i, t := range tracks {
		tag, err := language.Parse(t.LanguageCode)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		idx = append(idx, i)
	}
	if len(tags) == 0 {
		return CaptionTrack{}, false
	}
	m := language.NewMatcher(tags)
	_, i, conf := m.Match(prefs...)
	// High still admits region variants (en-US for en) but keeps unrelated
	// languages out.
	if conf < language.High {
		return CaptionTrack{}, false
	}
	return tracks[idx[i]], true
}
