//go:build !cgo

package ocr

// The gosseract bindings need cgo; without it the in-process engine is
// absent and the chain starts at the tesseract binary (nil native engine
// is an accepted state, see Extractor.WithNative).
func newGosseractEngine(cfg Config) NativeEngine { return nil }
