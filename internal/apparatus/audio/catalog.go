package audio

import (
	"fmt"

	"leverbox/internal/apparatus/domain"
)

// Track addresses one sound file on the player's storage.
type Track struct {
	Folder int
	File   int
}

func (t Track) String() string {
	return fmt.Sprintf("%02d/%03d", t.Folder, t.File)
}

// Catalog maps tone categories to tracks.
type Catalog map[domain.Tone]Track

func DefaultCatalog(folder int) Catalog {
	return Catalog{
		domain.ToneReward:           {Folder: folder, File: 1},
		domain.ToneStart:            {Folder: folder, File: 2},
		domain.ToneError:            {Folder: folder, File: 3},
		domain.ToneTransmissionFail: {Folder: folder, File: 4},
		domain.ToneModeOne:          {Folder: folder, File: 5},
		domain.ToneModeTwo:          {Folder: folder, File: 6},
		domain.ToneModeThree:        {Folder: folder, File: 7},
		domain.ToneUnlock:           {Folder: folder, File: 2},
	}
}

func (c Catalog) Track(tone domain.Tone) (Track, bool) {
	track, ok := c[tone]
	return track, ok
}
