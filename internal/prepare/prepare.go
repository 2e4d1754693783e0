// Package prepare turns a requested document into a file a printer can
// take: PostScript for text, images and PDFs, anything else as is.
package prepare

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"lprun/internal/domain"
	appErrors "lprun/internal/errors"
	"lprun/internal/infra/exif"
	"lprun/internal/infra/shell"
	"lprun/internal/logging"
)

type FileSystem interface {
	Exists(path string) (bool, error)
	TempFile(dir, pattern string) (string, error)
	WriteTemp(dir, pattern string, data []byte) (string, error)
	Remove(path string) error
}

type OrientationReader interface {
	Orientation(ctx context.Context, path string) (int, error)
}

// Prepared is the file to send. Owned files are temporaries created by the
// Preparer and must be removed with Cleanup once the job is done.
type Prepared struct {
	Path  string
	Owned bool

	remove func(string) error
}

func (p Prepared) Cleanup() error {
	if !p.Owned || p.remove == nil {
		return nil
	}
	return p.remove(p.Path)
}

var ErrNoConverter = errors.New("no converter available")

type Preparer struct {
	Shell  shell.Commander
	FS     FileSystem
	Exif   OrientationReader
	Logger logging.Logger
	// Available reports whether a tool is on PATH. Defaults to shell.Available.
	Available func(name string) bool
	TempDir   string
}

func (p Preparer) Prepare(ctx context.Context, doc domain.Document) (Prepared, error) {
	switch {
	case doc.Text != "":
		return p.text(ctx, doc.Text, doc.Color)
	case doc.ImagePath != "":
		if err := p.exists(doc.ImagePath); err != nil {
			return Prepared{}, err
		}
		return p.image(ctx, doc.ImagePath, doc.Color)
	case doc.FilePath != "":
		if err := p.exists(doc.FilePath); err != nil {
			return Prepared{}, err
		}
		if domain.IsPDF(doc.FilePath) {
			return p.pdf(ctx, doc.FilePath, doc.Color)
		}
		return Prepared{Path: doc.FilePath}, nil
	default:
		return Prepared{}, appErrors.Wrap(appErrors.MissingDocument, "prepare", "", errors.New("no document"))
	}
}

func (p Preparer) exists(path string) error {
	ok, err := p.FS.Exists(path)
	if err != nil {
		return appErrors.Wrap(appErrors.IOFailure, "stat", path, err)
	}
	if !ok {
		return appErrors.Wrap(appErrors.NotFound, "stat", path, fs.ErrNotExist)
	}
	return nil
}

func (p Preparer) text(ctx context.Context, text string, mode domain.ColorMode) (Prepared, error) {
	path, err := p.FS.WriteTemp(p.TempDir, "lprun_text_*.ps", TextPostScript(text))
	if err != nil {
		return Prepared{}, appErrors.Wrap(appErrors.Preparation, appErrors.OpPrepareText, "text", err)
	}
	out := p.owned(path)
	if mode != domain.ColorGrayscale {
		return out, nil
	}

	// Grayscale is best effort for text; the plain page is kept if
	// ImageMagick is missing or fails.
	gray, err := p.grayscale(ctx, path, "lprun_text_gray_*.ps")
	if err != nil {
		p.Logger.Verbosef("grayscale text pass skipped: %v", err)
		return out, nil
	}
	p.discard(out)
	return gray, nil
}

func (p Preparer) image(ctx context.Context, path string, mode domain.ColorMode) (Prepared, error) {
	fail := func(err error) (Prepared, error) {
		return Prepared{}, appErrors.Wrap(appErrors.Preparation, appErrors.OpPrepareImage, path, err)
	}

	magick, ok := p.imageMagick()
	if !ok {
		return fail(fmt.Errorf("%w: install ImageMagick (magick or convert)", ErrNoConverter))
	}
	outPath, err := p.FS.TempFile(p.TempDir, "lprun_img_*.ps")
	if err != nil {
		return fail(err)
	}
	out := p.owned(outPath)

	args := []string{path}
	if p.rotated(ctx, path) {
		args = append(args, "-auto-orient")
	}
	if mode == domain.ColorGrayscale {
		args = append(args, "-colorspace", "Gray")
	}
	args = append(args, outPath)

	if _, err := p.Shell.Run(ctx, magick[0], append(magick[1:], args...)...); err != nil {
		p.discard(out)
		return fail(errors.New(shell.Reason(err)))
	}
	return out, nil
}

func (p Preparer) pdf(ctx context.Context, path string, mode domain.ColorMode) (Prepared, error) {
	fail := func(err error) (Prepared, error) {
		return Prepared{}, appErrors.Wrap(appErrors.Preparation, appErrors.OpPreparePDF, path, err)
	}

	outPath, err := p.FS.TempFile(p.TempDir, "lprun_pdf_*.ps")
	if err != nil {
		return fail(err)
	}
	out := p.owned(outPath)

	var lastErr error = fmt.Errorf("%w: install poppler-utils (pdftops) or ghostscript (gs)", ErrNoConverter)
	if p.available("pdftops") {
		_, err := p.Shell.Run(ctx, "pdftops", path, outPath)
		if err == nil {
			if mode != domain.ColorGrayscale {
				return out, nil
			}
			// pdftops has no grayscale mode; post-process when possible.
			if gray, err := p.grayscale(ctx, outPath, "lprun_pdf_gray_*.ps"); err == nil {
				p.discard(out)
				return gray, nil
			}
			return out, nil
		}
		p.Logger.Verbosef("pdftops failed, trying ghostscript: %v", err)
		lastErr = errors.New(shell.Reason(err))
	}

	if p.available("gs") {
		_, err := p.Shell.Run(ctx, "gs", GhostscriptArgs(path, outPath, mode)...)
		if err == nil {
			return out, nil
		}
		lastErr = errors.New(shell.Reason(err))
	}

	p.discard(out)
	return fail(lastErr)
}

// discard removes an intermediate file. A failed removal only leaves a
// temporary behind, so it is logged and the job goes on.
func (p Preparer) discard(out Prepared) {
	if err := out.Cleanup(); err != nil {
		p.Logger.Verbosef("remove %s: %v", out.Path, err)
	}
}

// grayscale runs an ImageMagick colorspace pass over a PostScript file.
func (p Preparer) grayscale(ctx context.Context, path, pattern string) (Prepared, error) {
	magick, ok := p.imageMagick()
	if !ok {
		return Prepared{}, ErrNoConverter
	}
	grayPath, err := p.FS.TempFile(p.TempDir, pattern)
	if err != nil {
		return Prepared{}, err
	}
	gray := p.owned(grayPath)
	args := append(magick[1:], path, "-colorspace", "Gray", grayPath)
	if _, err := p.Shell.Run(ctx, magick[0], args...); err != nil {
		p.discard(gray)
		return Prepared{}, err
	}
	return gray, nil
}

// imageMagick returns the command prefix for ImageMagick: v7's
// "magick convert" when available, v6's "convert" otherwise.
func (p Preparer) imageMagick() ([]string, bool) {
	if p.available("magick") {
		return []string{"magick", "convert"}, true
	}
	if p.available("convert") {
		return []string{"convert"}, true
	}
	return nil, false
}

func (p Preparer) rotated(ctx context.Context, path string) bool {
	if p.Exif == nil {
		return false
	}
	orientation, err := p.Exif.Orientation(ctx, path)
	if err != nil {
		p.Logger.Verbosef("exif orientation of %s: %v", path, err)
		return false
	}
	return exif.NeedsRotation(orientation)
}

func (p Preparer) available(name string) bool {
	if p.Available != nil {
		return p.Available(name)
	}
	return shell.Available(name)
}

func (p Preparer) owned(path string) Prepared {
	return Prepared{Path: path, Owned: true, remove: p.FS.Remove}
}

// GhostscriptArgs converts a PDF to level 2 PostScript with ps2write.
func GhostscriptArgs(in, out string, mode domain.ColorMode) []string {
	args := []string{"-q", "-dNOPAUSE", "-dBATCH", "-sDEVICE=ps2write"}
	if mode == domain.ColorGrayscale {
		args = append(args, "-sColorConversionStrategy=Gray", "-dProcessColorModel=/DeviceGray")
	}
	return append(args,
		"-dPDFSETTINGS=/printer",
		"-dCompatibilityLevel=1.4",
		"-dAutoRotatePages=/None",
		"-dEmbedAllFonts=true",
		"-sOutputFile="+out,
		in,
	)
}
