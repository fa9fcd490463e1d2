package quality

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	res2160Regex = regexp.MustCompile(`\b(2160p|4k|uhd)\b`)
	res1080Regex = regexp.MustCompile(`\b1080[pi]\b`)
	res720Regex  = regexp.MustCompile(`\b720p\b`)
	resSDRegex   = regexp.MustCompile(`\b(480p|576p|480i|576i)\b`)

	remuxRegex    = regexp.MustCompile(`\b(remux|bdremux)\b`)
	blurayRegex   = regexp.MustCompile(`\b(bluray|blu ray|bdrip|brrip|bd25|bd50)\b`)
	webdlRegex    = regexp.MustCompile(`\b(web dl|webdl|web)\b`)
	webripRegex   = regexp.MustCompile(`\b(webrip|web rip)\b`)
	hdtvRegex     = regexp.MustCompile(`\b(hdtv)\b`)
	sdtvRegex     = regexp.MustCompile(`\b(sdtv|pdtv|dsr|tvrip)\b`)
	dvdRegex      = regexp.MustCompile(`\b(dvd|dvdrip|dvd5|dvd9|dvdr)\b`)
	camRegex      = regexp.MustCompile(`\b(cam|camrip|hdcam)\b`)
	telesyncRegex = regexp.MustCompile(`\b(ts|telesync|hdts|tsrip)\b`)

	properRegex  = regexp.MustCompile(`\bproper\b`)
	repackRegex  = regexp.MustCompile(`\b(repack|rerip)\b`)
	versionRegex = regexp.MustCompile(`\bv([1-9])\b`)

	hiResRegex   = regexp.MustCompile(`\b(24 ?bit|24 (44|48|88|96|176|192)|hi ?res)\b`)
	alacRegex    = regexp.MustCompile(`\balac\b`)
	bitrateRegex = regexp.MustCompile(`\b(128|192|256|320) ?(k|kbps|kbit)?\b`)
	lameV0Regex  = regexp.MustCompile(`\bv0\b`)
	lameV2Regex  = regexp.MustCompile(`\bv2\b`)
)

// normalizeName lowercases a file or release name, strips accents and turns
// separators into spaces so tokens can be matched on word boundaries.
func normalizeName(name string) string {
	s := strings.ToLower(name)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}
	s = strings.NewReplacer(".", " ", "_", " ", "-", " ", "[", " ", "]", " ", "(", " ", ")", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// mediaExtensions are the container extensions stripped before parsing.
var mediaExtensions = map[string]bool{
	"mkv": true, "mp4": true, "m4v": true, "avi": true, "mov": true, "wmv": true,
	"mpg": true, "mpeg": true, "webm": true, "ts": true, "m2ts": true,
	"flac": true, "alac": true, "mp3": true, "m4a": true, "aac": true,
	"ogg": true, "opus": true, "wav": true,
}

// stripExt removes a trailing media extension so it is not read as a token.
// Release names such as "Movie.720p.HDTV" keep their last segment.
func stripExt(name string) (string, string) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !mediaExtensions[ext] {
		return name, ""
	}
	return name[:len(name)-len(ext)-1], ext
}

// parseRevision reads proper/repack markers. Version tokens (v2, v3) are
// only read when numbered releases are meaningful for the family; music
// names reuse them for LAME presets.
func parseRevision(s string, numbered bool) Revision {
	rev := DefaultRevision
	rev.Proper = properRegex.MatchString(s)
	rev.Repack = repackRegex.MatchString(s)
	if !numbered {
		return rev
	}
	if m := versionRegex.FindStringSubmatch(s); len(m) == 2 {
		if v, err := strconv.Atoi(m[1]); err == nil {
			rev.Version = v
		}
	}
	return rev
}

type resolution int

const (
	resUnknown resolution = iota
	resSD
	res720
	res1080
	res2160
)

func parseResolution(s string) resolution {
	switch {
	case res2160Regex.MatchString(s):
		return res2160
	case res1080Regex.MatchString(s):
		return res1080
	case res720Regex.MatchString(s):
		return res720
	case resSDRegex.MatchString(s):
		return resSD
	default:
		return resUnknown
	}
}

// byResolution picks the tier for a resolution, or "" when the catalog has none.
func byResolution(r resolution, sd, r720, r1080, r2160 string) string {
	switch r {
	case resSD:
		return sd
	case res720:
		return r720
	case res1080:
		return r1080
	case res2160:
		return r2160
	default:
		return ""
	}
}

// ParseMovie derives a best-effort Model from a movie file or release name.
// Names it cannot place in a tier yield Unknown.
func ParseMovie(name string) Model {
	base, _ := stripExt(filepath.Base(name))
	s := normalizeName(base)
	rev := parseRevision(s, true)
	r := parseResolution(s)

	var tier string
	switch {
	case camRegex.MatchString(s):
		tier = MovieCAM
	case telesyncRegex.MatchString(s):
		tier = MovieTelesync
	case remuxRegex.MatchString(s):
		tier = byResolution(r, "", "", MovieRemux1080p, MovieRemux2160p)
	case blurayRegex.MatchString(s):
		tier = byResolution(r, MovieDVD, MovieBluray720p, MovieBluray1080p, MovieBluray2160p)
	case webripRegex.MatchString(s):
		tier = byResolution(r, MovieSDTV, MovieWEBRip720p, MovieWEBRip1080p, MovieWEBRip2160p)
	case webdlRegex.MatchString(s):
		tier = byResolution(r, MovieSDTV, MovieWEBDL720p, MovieWEBDL1080p, MovieWEBDL2160p)
	case hdtvRegex.MatchString(s):
		tier = byResolution(r, MovieSDTV, MovieHDTV720p, MovieHDTV1080p, MovieHDTV2160p)
		if r == resUnknown {
			tier = MovieSDTV
		}
	case dvdRegex.MatchString(s):
		tier = MovieDVD
	case sdtvRegex.MatchString(s):
		tier = MovieSDTV
	default:
		// Resolution alone is read as a broadcast capture of that resolution.
		tier = byResolution(r, MovieSDTV, MovieHDTV720p, MovieHDTV1080p, MovieHDTV2160p)
	}

	if tier == "" {
		return Model{Quality: UnknownFor(FamilyMovie), Revision: rev}
	}
	return Model{Quality: mustLookup(FamilyMovie, tier), Revision: rev}
}

// AudioHint carries measured stream properties that refine name parsing.
// Zero fields are ignored.
type AudioHint struct {
	Codec         string // ffprobe codec name: flac, alac, mp3, aac
	BitRateKbps   int
	BitsPerSample int
}

// ParseMusic derives a best-effort Model from a music file name, refined by
// measured stream properties when available.
func ParseMusic(name string, hint AudioHint) Model {
	base, ext := stripExt(filepath.Base(name))
	s := normalizeName(base)
	rev := parseRevision(s, false)
	codec := strings.ToLower(strings.TrimSpace(hint.Codec))

	var tier string
	switch {
	case codec == "flac" || (codec == "" && ext == "flac"):
		tier = MusicFLAC
		if hint.BitsPerSample >= 24 || (hint.BitsPerSample == 0 && hiResRegex.MatchString(s)) {
			tier = MusicFLAC24bit
		}
	case codec == "alac" || (codec == "" && (ext == "alac" || (ext == "m4a" && alacRegex.MatchString(s)))):
		tier = MusicALAC
	case codec == "mp3" || (codec == "" && ext == "mp3"):
		tier = mp3Tier(bitrateOf(s, hint))
	case codec == "aac" || (codec == "" && (ext == "m4a" || ext == "aac")):
		tier = aacTier(bitrateOf(s, hint))
	}

	if tier == "" {
		return Model{Quality: UnknownFor(FamilyMusic), Revision: rev}
	}
	return Model{Quality: mustLookup(FamilyMusic, tier), Revision: rev}
}

// bitrateOf prefers the measured bitrate over tokens in the name.
func bitrateOf(s string, hint AudioHint) int {
	if hint.BitRateKbps > 0 {
		return hint.BitRateKbps
	}
	if m := bitrateRegex.FindStringSubmatch(s); len(m) >= 2 {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v
		}
	}
	switch {
	case lameV0Regex.MatchString(s):
		return 256
	case lameV2Regex.MatchString(s):
		return 192
	}
	return 0
}

func mp3Tier(kbps int) string {
	switch {
	case kbps >= 320:
		return MusicMP3320
	case kbps >= 256:
		return MusicMP3256
	case kbps >= 192:
		return MusicMP3192
	case kbps >= 128:
		return MusicMP3128
	default:
		return ""
	}
}

func aacTier(kbps int) string {
	switch {
	case kbps >= 320:
		return MusicAAC320
	case kbps >= 256:
		return MusicAAC256
	default:
		return ""
	}
}

// Parse dispatches to the family's parser.
func Parse(family Family, name string, hint AudioHint) Model {
	switch family {
	case FamilyMusic:
		return ParseMusic(name, hint)
	case FamilyMovie:
		return ParseMovie(name)
	default:
		return Model{Quality: UnknownFor(family), Revision: DefaultRevision}
	}
}
