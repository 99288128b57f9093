package report

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	log "github.com/sirupsen/logrus"
)

// Asset is an image resolved once at load time: either loaded and ready to be
// embedded, or a placeholder. Loading never fails.
type Asset struct {
	Path string
	// normalised 8-bit PNG bytes, empty for placeholders
	Data   []byte
	Width  int
	Height int
	// why the asset is a placeholder
	Reason string
}

func (a Asset) Loaded() bool {
	return len(a.Data) > 0
}

func Placeholder(path, reason string) Asset {
	return Asset{Path: path, Reason: reason}
}

// LoadAsset reads and decodes the image at path. An empty path, a read error
// or undecodable data all give a placeholder.
func LoadAsset(path string) Asset {
	if path == "" {
		return Placeholder("", "no path set")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("image %s not loaded, using placeholder: %s", path, err)
		return Placeholder(path, err.Error())
	}

	data, bounds, err := normalizeImage(raw)
	if err != nil {
		log.Warnf("image %s not decoded, using placeholder: %s", path, err)
		return Placeholder(path, err.Error())
	}

	return Asset{
		Path:   path,
		Data:   data,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}

// normalizeImage decodes png, jpeg or gif data and re-encodes it as an
// 8-bit non-interlaced PNG, the one form the PDF writer always accepts.
func normalizeImage(raw []byte) ([]byte, image.Rectangle, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, image.Rectangle{}, fmt.Errorf("empty %s image", format)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, nrgba); err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nrgba.Bounds(), nil
}

// AssetPaths are the optional static images of a report.
type AssetPaths struct {
	LeftLogo     string `toml:"left_logo" yaml:"left_logo"`
	RightLogo    string `toml:"right_logo" yaml:"right_logo"`
	Menstruation string `toml:"menstruation" yaml:"menstruation"`
	OK           string `toml:"ok" yaml:"ok"`
	Vigilance    string `toml:"vigilance" yaml:"vigilance"`
	Danger       string `toml:"danger" yaml:"danger"`
	Heart        string `toml:"heart" yaml:"heart"`
	Reserve      string `toml:"reserve" yaml:"reserve"`
	Regeneration string `toml:"regeneration" yaml:"regeneration"`
	Effort       string `toml:"effort" yaml:"effort"`
}

type Assets struct {
	LeftLogo  Asset
	RightLogo Asset

	// legend and status icons
	Menstruation Asset
	OK           Asset
	Vigilance    Asset
	Danger       Asset

	// card icons
	Heart        Asset
	Reserve      Asset
	Regeneration Asset
	Effort       Asset
}

func LoadAssets(paths AssetPaths) Assets {
	return Assets{
		LeftLogo:     LoadAsset(paths.LeftLogo),
		RightLogo:    LoadAsset(paths.RightLogo),
		Menstruation: LoadAsset(paths.Menstruation),
		OK:           LoadAsset(paths.OK),
		Vigilance:    LoadAsset(paths.Vigilance),
		Danger:       LoadAsset(paths.Danger),
		Heart:        LoadAsset(paths.Heart),
		Reserve:      LoadAsset(paths.Reserve),
		Regeneration: LoadAsset(paths.Regeneration),
		Effort:       LoadAsset(paths.Effort),
	}
}
