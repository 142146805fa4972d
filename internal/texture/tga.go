// Package texture reads texture atlas images, mainly to learn their size
// so UVs can be normalized against the real atlas.
package texture

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

func init() {
	// TGA has no signature; match on color-map type 0 and a supported
	// image type. The first byte is the free-form ID length.
	image.RegisterFormat("tga", "?\x00\x02", DecodeTGA, DecodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", DecodeTGA, DecodeTGAConfig)
}

type tgaHeader struct {
	idLength      int
	imageType     byte
	width, height int
	bytesPerPixel int
	topToBottom   bool
}

func readTGAHeader(r io.Reader) (tgaHeader, error) {
	var h [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return tgaHeader{}, fmt.Errorf("TGA header: %w", err)
	}

	colorMapType := h[1]
	hdr := tgaHeader{
		idLength:  int(h[0]),
		imageType: h[2],
		width:     int(h[12]) | int(h[13])<<8,
		height:    int(h[14]) | int(h[15])<<8,
		// Bit 5 of the descriptor selects top-to-bottom row order.
		topToBottom: h[17]&0x20 != 0,
	}
	bpp := int(h[16])

	if colorMapType != 0 {
		return hdr, fmt.Errorf("color-mapped TGA not supported")
	}
	if hdr.imageType != TGATypeUncompressed && hdr.imageType != TGATypeRLE {
		return hdr, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", hdr.imageType)
	}
	if bpp != 24 && bpp != 32 {
		return hdr, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}
	hdr.bytesPerPixel = bpp / 8
	return hdr, nil
}

// DecodeTGAConfig returns the dimensions of a TGA image without reading
// the pixel data.
func DecodeTGAConfig(r io.Reader) (image.Config, error) {
	hdr, err := readTGAHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: hdr.width, Height: hdr.height}, nil
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color
// TGA image.
func DecodeTGA(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	hdr, err := readTGAHeader(br)
	if err != nil {
		return nil, err
	}
	if _, err := br.Discard(hdr.idLength); err != nil {
		return nil, errTGATruncated
	}

	img := image.NewRGBA(image.Rect(0, 0, hdr.width, hdr.height))
	if hdr.imageType == TGATypeUncompressed {
		err = decodeTGARaw(img, br, hdr)
	} else {
		err = decodeTGARLE(img, br, hdr)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (h tgaHeader) row(y int) int {
	if h.topToBottom {
		return y
	}
	return h.height - 1 - y
}

// readPixel reads one BGR(A) pixel.
func readPixel(r *bufio.Reader, bytesPerPixel int) (color.RGBA, error) {
	var px [4]byte
	if _, err := io.ReadFull(r, px[:bytesPerPixel]); err != nil {
		return color.RGBA{}, errTGATruncated
	}
	a := uint8(255)
	if bytesPerPixel == 4 {
		a = px[3]
	}
	return color.RGBA{R: px[2], G: px[1], B: px[0], A: a}, nil
}

func decodeTGARaw(img *image.RGBA, r *bufio.Reader, hdr tgaHeader) error {
	for y := 0; y < hdr.height; y++ {
		destY := hdr.row(y)
		for x := 0; x < hdr.width; x++ {
			c, err := readPixel(r, hdr.bytesPerPixel)
			if err != nil {
				return err
			}
			img.SetRGBA(x, destY, c)
		}
	}
	return nil
}

// decodeTGARLE decodes RLE packets until every pixel is filled.
func decodeTGARLE(img *image.RGBA, r *bufio.Reader, hdr tgaHeader) error {
	pixelCount := hdr.width * hdr.height
	pixelIdx := 0

	put := func(c color.RGBA) {
		img.SetRGBA(pixelIdx%hdr.width, hdr.row(pixelIdx/hdr.width), c)
		pixelIdx++
	}

	for pixelIdx < pixelCount {
		packet, err := r.ReadByte()
		if err != nil {
			return errTGATruncated
		}
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet - repeat single pixel
			c, err := readPixel(r, hdr.bytesPerPixel)
			if err != nil {
				return err
			}
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(c)
			}
			continue
		}

		// Raw packet - read count pixels
		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			c, err := readPixel(r, hdr.bytesPerPixel)
			if err != nil {
				return err
			}
			put(c)
		}
	}
	return nil
}
