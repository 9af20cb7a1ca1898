package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/23skdu/longbow-bowyer/internal/accel"
	"github.com/23skdu/longbow-bowyer/internal/solver"
)

var (
	opName       = flag.String("op", "", "Operation (potrf, getrf, geqrf, orgqr, syevd, syevj, gesvd, gesvdj, sytrd, csrlsvqr)")
	dtypeName    = flag.String("dtype", "f32", "Element type (f32, f64, c64, c128)")
	rows         = flag.Int("m", 0, "Rows (defaults to n for square operations)")
	cols         = flag.Int("n", 128, "Columns / matrix order")
	reflectors   = flag.Int("k", 0, "Householder reflector count (orgqr, defaults to n)")
	batch        = flag.Int("batch", 1, "Batch count")
	lower        = flag.Bool("lower", true, "Use the lower triangle (potrf, syevd, syevj, sytrd)")
	computeUV    = flag.Bool("compute-uv", true, "Compute singular vectors (gesvd, gesvdj)")
	fullMatrices = flag.Bool("full-matrices", false, "Full-size U/V instead of economy (gesvd)")
	econ         = flag.Int("econ", 1, "Economy flag (gesvdj)")
	nnz          = flag.Int("nnz", 0, "Structural nonzero count (csrlsvqr)")
	reorder      = flag.Int("reorder", 0, "Reorder strategy (csrlsvqr)")
	tol          = flag.Float64("tol", 1e-12, "Tolerance (csrlsvqr)")
	listOps      = flag.Bool("list", false, "List the kernel registration table and exit")
	useCache     = flag.Bool("cache", false, "Enable the descriptor build cache")
	enableOTel   = flag.Bool("otel", false, "Enable OpenTelemetry tracing (stdout)")
)

func main() {
	// Initialize logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	flag.Parse()

	if *enableOTel {
		shutdown, err := initTracer()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer shutdown(context.Background())
	}

	defer accel.Shutdown()
	be := accel.Current()
	log.Info().Str("backend", be.Name).Str("library", be.Lib.Name()).Msg("Solver backend ready")

	if *useCache {
		solver.SetCache(solver.NewMapCache())
	}

	if *listOps {
		regs := solver.Registrations()
		names := make([]string, 0, len(regs))
		for name := range regs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	if *opName == "" {
		log.Fatal().Msg("No operation given (use -op, or -list to show the registration table)")
	}

	dt, err := parseDType(*dtypeName)
	if err != nil {
		log.Fatal().Err(err).Msg("Bad dtype")
	}

	m, n, k := *rows, *cols, *reflectors
	if m == 0 {
		m = n
	}
	if k == 0 {
		k = n
	}

	_, span := otel.Tracer("bowyer").Start(context.Background(), "build_descriptor")
	span.SetAttributes(attribute.String("op", *opName), attribute.String("dtype", *dtypeName))

	start := time.Now()
	size, blob, err := buildDescriptor(dt, m, n, k)
	span.End()
	if err != nil {
		log.Fatal().Err(err).Str("op", *opName).Msg("Descriptor build failed")
	}

	log.Info().
		Str("op", *opName).
		Str("dtype", *dtypeName).
		Int("m", m).
		Int("n", n).
		Int("batch", *batch).
		Int64("workspace_bytes", size).
		Int("descriptor_bytes", len(blob)).
		Dur("elapsed", time.Since(start)).
		Msg("Built descriptor")
}

func buildDescriptor(dt solver.DType, m, n, k int) (int64, []byte, error) {
	switch *opName {
	case "potrf":
		return solver.BuildPotrfDescriptor(dt, *lower, *batch, n)
	case "getrf":
		return solver.BuildGetrfDescriptor(dt, *batch, m, n)
	case "geqrf":
		return solver.BuildGeqrfDescriptor(dt, *batch, m, n)
	case "orgqr":
		return solver.BuildOrgqrDescriptor(dt, *batch, m, n, k)
	case "syevd":
		return solver.BuildSyevdDescriptor(dt, *lower, *batch, n)
	case "syevj":
		return solver.BuildSyevjDescriptor(dt, *lower, *batch, n)
	case "gesvd":
		return solver.BuildGesvdDescriptor(dt, *batch, m, n, *computeUV, *fullMatrices)
	case "gesvdj":
		return solver.BuildGesvdjDescriptor(dt, *batch, m, n, *computeUV, *econ)
	case "sytrd":
		return solver.BuildSytrdDescriptor(dt, *lower, *batch, n)
	case "csrlsvqr":
		blob, err := solver.BuildCsrlsvqrDescriptor(dt, n, *nnz, *reorder, *tol)
		return 0, blob, err
	default:
		return 0, nil, fmt.Errorf("unknown operation %q", *opName)
	}
}

func parseDType(s string) (solver.DType, error) {
	switch s {
	case "f32":
		return solver.DType{Kind: 'f', Size: 4}, nil
	case "f64":
		return solver.DType{Kind: 'f', Size: 8}, nil
	case "c64":
		return solver.DType{Kind: 'c', Size: 8}, nil
	case "c128":
		return solver.DType{Kind: 'c', Size: 16}, nil
	default:
		return solver.DType{}, fmt.Errorf("unknown dtype %q", s)
	}
}

func initTracer() (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("bowyer"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp.Shutdown, nil
}
