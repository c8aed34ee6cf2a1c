// Package server ties the loader, reader, transform and writer
// packages into COPRIS's stream pipeline and accept loop. Grounded on
// original_source/src/main.c's main() driving loop and
// read_socket.c's copris_handle_socket, in the style of the teacher's
// cs104 long-lived, config-driven service.
package server

import (
	"errors"
	"fmt"
	"os"

	"github.com/bertronika/copris-go/internal/clog"
	"github.com/bertronika/copris-go/internal/config"
	"github.com/bertronika/copris-go/internal/copris"
	"github.com/bertronika/copris-go/internal/encoding"
	"github.com/bertronika/copris-go/internal/feature"
	"github.com/bertronika/copris-go/internal/filter"
	"github.com/bertronika/copris-go/internal/markdown"
	"github.com/bertronika/copris-go/internal/reader"
	"github.com/bertronika/copris-go/internal/recode"
	"github.com/bertronika/copris-go/internal/session"
	"github.com/bertronika/copris-go/internal/symtab"
	"github.com/bertronika/copris-go/internal/vars"
	"github.com/bertronika/copris-go/internal/writer"
)

// Server holds the two symbol tables and configuration needed to run
// a COPRIS session. The tables are created once and are read-only
// once loading finishes, matching spec.md §5's shared-resource model.
type Server struct {
	Config   config.Config
	Features *symtab.Table
	Encoding *symtab.Table
	Log      *clog.Logger
}

// New builds a Server, loading the feature and encoding tables named
// in cfg. Every loader failure is logged at Error level. A feature file
// that fails pair validation makes New return the error; any other
// feature file failure is non-fatal and leaves the feature table with
// whatever entries were loaded before the failing line. A failed
// encoding file is non-fatal and leaves the encoding table empty.
func New(cfg config.Config, log *clog.Logger) (*Server, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}

	features := feature.NewTable()
	if cfg.FeatureFile != "" {
		if _, err := feature.Load(cfg.FeatureFile, features); err != nil {
			log.Error("loading feature file %q: %v", cfg.FeatureFile, err)
			if errors.Is(err, copris.ErrMissingPair) || errors.Is(err, copris.ErrReservedName) {
				return nil, err
			}
		}
	}

	var enc *symtab.Table
	if cfg.EncodingFile != "" {
		var err error
		enc, _, err = encoding.Load(cfg.EncodingFile)
		if err != nil {
			log.Error("loading encoding file %q: %v", cfg.EncodingFile, err)
			enc = symtab.New()
		}
	} else {
		enc = symtab.New()
	}

	return &Server{Config: cfg, Features: features, Encoding: enc, Log: log}, nil
}

// Run drives one COPRIS session: it emits the startup session
// command, processes either stdin or one-or-more TCP streams
// depending on Config, and emits the shutdown session command before
// returning.
func (s *Server) Run() error {
	if startup := session.Wrap(nil, s.Features, session.Startup); len(startup) > 0 {
		if err := writer.Write(s.Config.Destination, startup); err != nil {
			return err
		}
	}
	defer func() {
		if shutdown := session.Wrap(nil, s.Features, session.Shutdown); len(shutdown) > 0 {
			_ = writer.Write(s.Config.Destination, shutdown)
		}
	}()

	if s.Config.Port == 0 {
		return s.runStdin()
	}
	return s.runSocket()
}

func (s *Server) runStdin() error {
	raw, stats, err := reader.ReadStdin(os.Stdin)
	if err != nil {
		if errors.Is(err, copris.ErrNoInput) {
			s.Log.Info("no input received on stdin")
			return nil
		}
		return err
	}
	s.Log.Error("received %d byte(s) in %d chunk(s) from stdin", stats.Sum, stats.Chunks)

	return s.processStream(raw)
}

func (s *Server) runSocket() error {
	ln, err := reader.Listen(s.Config.Port)
	if err != nil {
		return err
	}

	if !s.Config.Daemon {
		defer ln.Close()
	}

	for {
		conn, err := ln.AcceptTCP()
		if err != nil {
			return fmt.Errorf("%w: accepting connection: %v", copris.ErrIO, err)
		}

		if !s.Config.Daemon {
			ln.Close()
		}

		raw, stats, err := reader.ReadConn(conn, s.Config)
		conn.Close()
		if err != nil {
			s.Log.Error("reading stream: %v", err)
		} else {
			s.Log.Error("received %d byte(s) in %d chunk(s)%s", stats.Sum, stats.Chunks, limitSuffix(stats, s.Config))
			if err := s.processStream(raw); err != nil {
				s.Log.Error("processing stream: %v", err)
			}
		}

		if !s.Config.Daemon {
			return nil
		}
	}
}

func limitSuffix(stats reader.Stats, cfg config.Config) string {
	if !stats.SizeLimitActive {
		return ""
	}
	verb := "discarded"
	if cfg.Cutoff == config.Truncate {
		verb = "cut off"
	}
	return fmt.Sprintf(", %d byte(s) %s", stats.Discarded, verb)
}

// processStream runs one buffer through the full conversion pipeline,
// in the fixed order spec.md §2 lays out: modeline strip, recode,
// non-ASCII filter, markdown, variable substitution, session wrap,
// write.
func (s *Server) processStream(raw []byte) error {
	text, enableCommands, disableMarkdown, warn := vars.StripModeline(raw)
	if warn != "" {
		s.Log.Error("%s", warn)
	}

	recoded, warnUnmapped := recode.Recode(text, s.Encoding)
	text = recoded
	if warnUnmapped {
		s.Log.Error("raw multibyte output produced, no mapping found for one or more codepoints")
	}

	if s.Config.StripNonASCII {
		text = filter.StripNonASCII(text)
	}

	if !disableMarkdown {
		out, warnings := markdown.Transform(text, s.Features)
		text = out
		for _, w := range warnings {
			s.Log.Error("%s", w)
		}
	}

	if enableCommands {
		out, warnings := vars.Substitute(text, s.Features)
		text = out
		for _, w := range warnings {
			s.Log.Error("%s", w)
		}
	}

	wrapped := session.Wrap(text, s.Features, session.Print)

	return writer.Write(s.Config.Destination, wrapped)
}
