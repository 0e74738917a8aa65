package signature

import (
	"github.com/deploymenttheory/go-encdetect/internal/types"
)

// DefaultSignatures returns the compiled-in table of known encrypted
// volume and container headers. Offsets are relative to the start of the
// sampled window, which callers align with the volume or partition start.
//
// The table is ordered most specific first. TrueCrypt and VeraCrypt are
// deliberately absent: their headers are indistinguishable from random
// bytes, which is exactly the case the entropy fallback covers.
func DefaultSignatures() []types.SignatureEntry {
	return []types.SignatureEntry{
		{
			// NTFS-style jump followed by the "-FVE-FS-" OEM name.
			Name:          "BitLocker",
			PatternOffset: 0,
			Pattern:       []byte{0xEB, 0x58, 0x90, 0x2D, 0x46, 0x56, 0x45, 0x2D, 0x46, 0x53, 0x2D},
		},
		{
			// BitLocker To Go keeps a FAT32 "MSWIN4.1" OEM name so the
			// volume stays mountable enough to show the unlock tool.
			Name:          "BitLocker To Go",
			PatternOffset: 0,
			Pattern:       []byte{0xEB, 0x58, 0x90, 0x4D, 0x53, 0x57, 0x49, 0x4E, 0x34, 0x2E, 0x31},
		},
		{
			// "PGPGUARD" after the boot jump.
			Name:          "PGP Whole Disk Encryption",
			PatternOffset: 0,
			Pattern:       []byte{0xEB, 0x48, 0x90, 0x50, 0x47, 0x50, 0x47, 0x55, 0x41, 0x52, 0x44},
		},
		{
			Name:          "McAfee SafeBoot",
			PatternOffset: 3,
			Pattern:       []byte("SafeBoot"),
		},
		{
			Name:          "Check Point Full Disk Encryption",
			PatternOffset: 0x5A,
			Pattern:       []byte("Protect"),
		},
		{
			// FileVault / encrypted DMG CDSA wrapper.
			Name:          "FileVault",
			PatternOffset: 0,
			Pattern:       []byte("encrcdsa"),
		},
		{
			Name:          "FreeBSD GELI",
			PatternOffset: 0,
			Pattern:       []byte("GEOM::ELI"),
		},
		{
			Name:          "LUKS1",
			PatternOffset: 0,
			Pattern:       []byte{0x4C, 0x55, 0x4B, 0x53, 0xBA, 0xBE, 0x00, 0x01},
		},
		{
			Name:          "LUKS2",
			PatternOffset: 0,
			Pattern:       []byte{0x4C, 0x55, 0x4B, 0x53, 0xBA, 0xBE, 0x00, 0x02},
		},
	}
}
