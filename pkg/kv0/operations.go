package kv0

import "github.com/ironleaf-games/kvtext/pkg/kv"

// DecodeArray implements spec §6.1 "decode2": the top-level key is read
// normally, but its value (and every "{ ... }" reached from it) is read
// as a flat, positionally ordered kv.Array rather than key/value pairs
// (spec §4.6's "encode2 only" array convention) -- the inverse of
// EncodeArray's alternating-pair emission.
func DecodeArray(data []byte, cfg *Config) (*kv.Value, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return newParser(data, cfg).parseTopArray()
}
