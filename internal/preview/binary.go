package preview

// DefaultBinarySampleSize matches Git's heuristic of scanning the first 8000 bytes.
const DefaultBinarySampleSize = 8000

// IsBinaryContent reports whether the first sampleSize bytes of content contain a NUL byte.
// UTF-16 and UTF-32 BOMs mark text and short-circuit the check.
func IsBinaryContent(content []byte, sampleSize int) bool {
	if sampleSize <= 0 {
		sampleSize = DefaultBinarySampleSize
	}
	// UTF-32 LE shares its first two bytes with UTF-16 LE, so both are caught here.
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false
		}
	}
	if len(content) >= 4 {
		if content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF {
			return false
		}
	}

	for _, b := range content[:min(len(content), sampleSize)] {
		if b == 0 {
			return true
		}
	}
	return false
}
