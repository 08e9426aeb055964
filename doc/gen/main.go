// Command gen builds font atlases with sample configurations and saves
// their textures as PNG images to doc/imgs/.
//
// Usage:
//
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"unicode"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/go-theft-auto/imdraw"
)

func main() {
	imdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sample defines a single atlas to build and save.
type sample struct {
	name  string                             // filename without extension
	setup func(atlas *imdraw.FontAtlas) error // adds fonts and custom rects
}

func run() error {
	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	for _, s := range buildSamples() {
		atlas := imdraw.NewFontAtlas()
		if err := s.setup(atlas); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		tex, err := atlas.GetTexDataAsAlpha8()
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		path := filepath.Join(outDir, s.name+".png")
		if err := savePNG(path, tex); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		fmt.Printf("saved %s (%dx%d)\n", path, tex.Width, tex.Height)
	}
	return nil
}

func buildSamples() []sample {
	return []sample{
		{
			name: "font_atlas",
			setup: func(atlas *imdraw.FontAtlas) error {
				_, err := atlas.AddFontDefault(nil)
				return err
			},
		},
		{
			name: "font_atlas_merged",
			setup: func(atlas *imdraw.FontAtlas) error {
				if _, err := atlas.AddFontDefault(nil); err != nil {
					return err
				}
				cfg := imdraw.DefaultFontConfig()
				cfg.MergeMode = true
				cfg.GlyphRanges = imdraw.GlyphRangesFromTables(unicode.Greek)
				if _, err := atlas.AddFontFromMemoryTTF(gobold.TTF, imdraw.DefaultFontSize, &cfg, nil); err != nil {
					return err
				}
				_, err := atlas.AddFontFromMemoryTTF(gomono.TTF, 20, nil, nil)
				return err
			},
		},
		{
			name: "font_atlas_tight",
			setup: func(atlas *imdraw.FontAtlas) error {
				atlas.Flags = imdraw.FontAtlasFlagsNoPowerOfTwoHeight | imdraw.FontAtlasFlagsNoMouseCursors
				atlas.TexDesiredWidth = 256
				font, err := atlas.AddFontDefault(nil)
				if err != nil {
					return err
				}
				// A solid custom glyph mapped to U+E000
				atlas.AddCustomRectFontGlyph(font, 0xE000, 12, 12, 14, imdraw.Vec2{X: 1, Y: 0})
				if err := atlas.Build(); err != nil {
					return err
				}
				tex, err := atlas.GetTexDataAsAlpha8()
				if err != nil {
					return err
				}
				r := atlas.CustomRect(0)
				for y := r.Y; y < r.Y+r.Height; y++ {
					for x := r.X; x < r.X+r.Width; x++ {
						tex.Pixels[y*tex.Width+x] = 0xFF
					}
				}
				return nil
			},
		},
	}
}

// savePNG writes an Alpha8 texture as white glyphs on black.
func savePNG(path string, tex imdraw.TexData) error {
	img := image.NewGray(image.Rect(0, 0, tex.Width, tex.Height))
	for y := range tex.Height {
		for x := range tex.Width {
			img.SetGray(x, y, color.Gray{Y: tex.Pixels[y*tex.Width+x]})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode: %w", err)
	}
	return f.Close()
}
