package cli

import (
	"encoding/binary"
	"fmt"
)

// extractJPEGOrientation returns the EXIF orientation (1..8) from JPEG bytes.
// It scans the segment stream for an APP1 Exif block and reads tag 0x0112 from
// IFD0. Only the orientation tag is needed here; full EXIF decoding is not.
func extractJPEGOrientation(data []byte) (int, error) {
	start, err := findTIFFStart(data)
	if err != nil {
		return 0, err
	}
	return orientationFromTIFF(data[start:])
}

// findTIFFStart walks JPEG segments looking for APP1 "Exif\0\0" and returns
// the index where the TIFF header begins.
func findTIFFStart(data []byte) (int, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return -1, fmt.Errorf("not a JPEG stream")
	}
	i := 2
	for i+4 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA { // start of scan; no EXIF past this point
			break
		}
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if marker == 0xE1 && segLen >= 8 {
			if i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
				return i + 10, nil
			}
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return -1, fmt.Errorf("no exif segment")
}

// orientationFromTIFF reads the orientation tag (0x0112) out of IFD0 in a TIFF
// block. Both byte orders are supported.
func orientationFromTIFF(t []byte) (int, error) {
	if len(t) < 8 {
		return 0, fmt.Errorf("tiff header truncated")
	}
	var order binary.ByteOrder
	switch {
	case t[0] == 'I' && t[1] == 'I':
		order = binary.LittleEndian
	case t[0] == 'M' && t[1] == 'M':
		order = binary.BigEndian
	default:
		return 0, fmt.Errorf("unknown tiff byte order")
	}
	if order.Uint16(t[2:4]) != 0x002A {
		return 0, fmt.Errorf("invalid tiff magic")
	}
	off := int(order.Uint32(t[4:8]))
	if off <= 0 || off+2 > len(t) {
		return 0, fmt.Errorf("ifd0 offset out of range")
	}
	n := int(order.Uint16(t[off : off+2]))
	for e := 0; e < n; e++ {
		ent := off + 2 + e*12
		if ent+12 > len(t) {
			break
		}
		tag := order.Uint16(t[ent : ent+2])
		typ := order.Uint16(t[ent+2 : ent+4])
		if tag == 0x0112 && typ == 3 { // SHORT
			return int(order.Uint16(t[ent+8 : ent+10])), nil
		}
	}
	return 0, fmt.Errorf("orientation tag not found")
}
