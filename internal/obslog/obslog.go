// Package obslog provides structured debug tracing for canonicalization and
// lattice-driver decisions (SPEC_FULL §2.2), mirroring the original
// implementation's config.PRINT_DB / print_db() (see
// _examples/original_source/jsonsubschema/config.py) but as leveled,
// structured logging via github.com/rs/zerolog (the logging library the
// retrieval pack's lacquerai-lacquer application uses throughout) instead
// of bare print statements.
package obslog

import (
	"io"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(io.Discard).With().Timestamp().Logger().Level(zerolog.Disabled)

// SetDebug redirects the package logger to w at debug level, or disables it
// entirely when w is nil — mirroring config.set_debug(enabled).
func SetDebug(w io.Writer) {
	if w == nil {
		logger = zerolog.New(io.Discard).With().Timestamp().Logger().Level(zerolog.Disabled)
		return
	}
	logger = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

// Canonicalize logs one canonicalization step at path with the resulting
// atom count, a no-op unless debug tracing is enabled.
func Canonicalize(path string, atomCount int) {
	logger.Debug().Str("path", path).Int("atoms", atomCount).Msg("canonicalize")
}

// Subtype logs one lattice-driver subtype decision between two atom base
// types and its verdict string.
func Subtype(aBase, bBase, verdict string) {
	logger.Debug().Str("a", aBase).Str("b", bBase).Str("verdict", verdict).Msg("subtype")
}

// ResolverUnknown logs a semantic resolver query that returned Unknown,
// surfaced through the separate diagnostic channel spec §7 calls for.
func ResolverUnknown(a, b string) {
	logger.Warn().Str("a", a).Str("b", b).Msg("resolver returned unknown")
}
