// Package key provides CLI helpers to display the journaling legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daily/pkg/glyph"
)

// Key prints a glyph legend describing bullets and signifiers.
type Key struct {
	Out io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out != nil {
		return k.Out
	}
	return color.Output
}

// Do renders the bullet and signifier keys.
func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")

	var bullets, sigs []glyph.Glyph
	for _, g := range glyph.DefaultGlyphs() {
		if g.Key == "none" {
			continue
		}
		if g.Signifier {
			sigs = append(sigs, g)
		} else {
			bullets = append(bullets, g)
		}
	}

	k.Key(ctx, bullets, false)
	_, _ = fmt.Fprintln(k.out(), "")
	k.Key(ctx, sigs, true)
	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Key renders a glyph table; when sig is true, signifiers are shown.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, sig bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if sig {
		tbl.AddRow(bold.Sprint("Signifiers"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("   Bullets"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if sig == v.Signifier {
			tbl.AddRow(v.Symbol, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}
