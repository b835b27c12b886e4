package alias

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Shell link (.lnk) binary layout, see [MS-SHLLINK].
const (
	headerSize = 0x4C

	flagHasLinkTargetIDList = 1 << 0
	flagHasLinkInfo         = 1 << 1
	flagHasName             = 1 << 2
	flagHasRelativePath     = 1 << 3
	flagHasWorkingDir       = 1 << 4
	flagHasArguments        = 1 << 5
	flagHasIconLocation     = 1 << 6
	flagIsUnicode           = 1 << 7

	linkInfoVolumeIDAndLocalBasePath = 1 << 0

	linkInfoHeaderSize        = 0x1C
	linkInfoHeaderSizeUnicode = 0x24

	fileAttributeNormal = 0x80
	showNormal          = 1
	driveFixed          = 3
)

var linkCLSID = [16]byte{
	0x01, 0x14, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
}

var le = binary.LittleEndian

// shellLink holds the parts of a shell link that matter for target resolution.
type shellLink struct {
	LocalBasePath    string
	CommonPathSuffix string
	Name             string
	RelativePath     string
	WorkingDir       string
	Arguments        string
	IconLocation     string
}

// target returns the absolute target recorded in LinkInfo, or "".
func (l *shellLink) target() string {
	if l.LocalBasePath == "" {
		return ""
	}
	return l.LocalBasePath + l.CommonPathSuffix
}

func parseShellLink(data []byte) (*shellLink, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d byte header", ErrNotAnAlias, len(data))
	}
	if le.Uint32(data[0:4]) != headerSize || !bytes.Equal(data[4:20], linkCLSID[:]) {
		return nil, ErrNotAnAlias
	}

	flags := le.Uint32(data[20:24])
	link := &shellLink{}
	off := headerSize

	if flags&flagHasLinkTargetIDList != 0 {
		if off+2 > len(data) {
			return nil, truncated("LinkTargetIDList")
		}
		off += 2 + int(le.Uint16(data[off:]))
		if off > len(data) {
			return nil, truncated("LinkTargetIDList")
		}
	}

	if flags&flagHasLinkInfo != 0 {
		if off+4 > len(data) {
			return nil, truncated("LinkInfo")
		}
		size := int(le.Uint32(data[off:]))
		if size < linkInfoHeaderSize || off+size > len(data) {
			return nil, truncated("LinkInfo")
		}
		parseLinkInfo(data[off:off+size], link)
		off += size
	}

	unicodeStrings := flags&flagIsUnicode != 0
	for _, field := range []struct {
		flag uint32
		dst  *string
	}{
		{flagHasName, &link.Name},
		{flagHasRelativePath, &link.RelativePath},
		{flagHasWorkingDir, &link.WorkingDir},
		{flagHasArguments, &link.Arguments},
		{flagHasIconLocation, &link.IconLocation},
	} {
		if flags&field.flag == 0 {
			continue
		}
		s, n, err := readStringData(data[off:], unicodeStrings)
		if err != nil {
			return nil, err
		}
		*field.dst = s
		off += n
	}

	return link, nil
}

func parseLinkInfo(info []byte, link *shellLink) {
	headerLen := le.Uint32(info[4:])
	infoFlags := le.Uint32(info[8:])

	if headerLen >= linkInfoHeaderSizeUnicode && len(info) >= linkInfoHeaderSizeUnicode {
		if infoFlags&linkInfoVolumeIDAndLocalBasePath != 0 {
			link.LocalBasePath = utf16CString(info, le.Uint32(info[0x1C:]))
		}
		link.CommonPathSuffix = utf16CString(info, le.Uint32(info[0x20:]))
	}
	if link.LocalBasePath == "" && infoFlags&linkInfoVolumeIDAndLocalBasePath != 0 {
		link.LocalBasePath = ansiCString(info, le.Uint32(info[0x10:]))
	}
	if link.CommonPathSuffix == "" {
		link.CommonPathSuffix = ansiCString(info, le.Uint32(info[0x18:]))
	}
}

func readStringData(b []byte, isUnicode bool) (string, int, error) {
	if len(b) < 2 {
		return "", 0, truncated("StringData")
	}
	count := int(le.Uint16(b))
	size := count
	if isUnicode {
		size = count * 2
	}
	if 2+size > len(b) {
		return "", 0, truncated("StringData")
	}
	raw := b[2 : 2+size]
	if isUnicode {
		return decodeUTF16(raw), 2 + size, nil
	}
	return decodeANSI(raw), 2 + size, nil
}

func ansiCString(b []byte, off uint32) string {
	if off == 0 || int(off) >= len(b) {
		return ""
	}
	s := b[off:]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return decodeANSI(s)
}

func utf16CString(b []byte, off uint32) string {
	if off == 0 || int(off) >= len(b) {
		return ""
	}
	s := b[off:]
	end := len(s) &^ 1
	for i := 0; i+1 < len(s); i += 2 {
		if s[i] == 0 && s[i+1] == 0 {
			end = i
			break
		}
	}
	return decodeUTF16(s[:end])
}

func decodeANSI(b []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

func decodeUTF16(b []byte) string {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

func encodeANSI(s string) []byte {
	out, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

func encodeUTF16(s string) []byte {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return out
}

// encodeShellLink writes a minimal link with a LinkInfo local base path and
// the optional relative path and working directory strings.
func encodeShellLink(link *shellLink) []byte {
	flags := uint32(flagHasLinkInfo | flagIsUnicode)
	if link.RelativePath != "" {
		flags |= flagHasRelativePath
	}
	if link.WorkingDir != "" {
		flags |= flagHasWorkingDir
	}

	buf := make([]byte, 0, 256)
	buf = le.AppendUint32(buf, headerSize)
	buf = append(buf, linkCLSID[:]...)
	buf = le.AppendUint32(buf, flags)
	buf = le.AppendUint32(buf, fileAttributeNormal)
	buf = append(buf, make([]byte, 24)...) // creation, access, write times
	buf = le.AppendUint32(buf, 0)          // file size
	buf = le.AppendUint32(buf, 0)          // icon index
	buf = le.AppendUint32(buf, showNormal)
	buf = append(buf, make([]byte, 2+2+4+4)...) // hot key, reserved

	buf = append(buf, encodeLinkInfo(link.LocalBasePath)...)

	for _, s := range []string{link.RelativePath, link.WorkingDir} {
		if s == "" {
			continue
		}
		u := encodeUTF16(s)
		buf = le.AppendUint16(buf, uint16(len(u)/2))
		buf = append(buf, u...)
	}

	return le.AppendUint32(buf, 0) // terminal block
}

func encodeLinkInfo(basePath string) []byte {
	volumeID := le.AppendUint32(nil, 0x11)
	volumeID = le.AppendUint32(volumeID, driveFixed)
	volumeID = le.AppendUint32(volumeID, 0) // serial number
	volumeID = le.AppendUint32(volumeID, 0x10)
	volumeID = append(volumeID, 0)

	ansiBase := append(encodeANSI(basePath), 0)
	ansiSuffix := []byte{0}
	unicodeBase := append(encodeUTF16(basePath), 0, 0)
	unicodeSuffix := []byte{0, 0}

	volumeOff := uint32(linkInfoHeaderSizeUnicode)
	baseOff := volumeOff + uint32(len(volumeID))
	suffixOff := baseOff + uint32(len(ansiBase))
	unicodeBaseOff := suffixOff + uint32(len(ansiSuffix))
	unicodeSuffixOff := unicodeBaseOff + uint32(len(unicodeBase))
	total := unicodeSuffixOff + uint32(len(unicodeSuffix))

	info := le.AppendUint32(nil, total)
	info = le.AppendUint32(info, linkInfoHeaderSizeUnicode)
	info = le.AppendUint32(info, linkInfoVolumeIDAndLocalBasePath)
	info = le.AppendUint32(info, volumeOff)
	info = le.AppendUint32(info, baseOff)
	info = le.AppendUint32(info, 0) // common network relative link
	info = le.AppendUint32(info, suffixOff)
	info = le.AppendUint32(info, unicodeBaseOff)
	info = le.AppendUint32(info, unicodeSuffixOff)
	info = append(info, volumeID...)
	info = append(info, ansiBase...)
	info = append(info, ansiSuffix...)
	info = append(info, unicodeBase...)
	return append(info, unicodeSuffix...)
}

func truncated(section string) error {
	return fmt.Errorf("%w: truncated %s: %w", ErrNotAnAlias, section, io.ErrUnexpectedEOF)
}
