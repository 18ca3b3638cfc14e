package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	schemapify "github.com/jakoblistabarth/schemapify-sub001"
	"github.com/jakoblistabarth/schemapify-sub001/dbg"
	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/style"
)

// Schematizes the polygons of a GeoJSON feature collection. The result is
// written as GeoJSON to the output file, or to stdout.
var (
	app = kingpin.New("schematize", "Schematize a subdivision given as a GeoJSON feature collection.")

	input      = app.Arg("input", "GeoJSON feature collection of Polygon and MultiPolygon features.").Required().ExistingFile()
	output     = app.Arg("output", "Where to write the schematized collection. Defaults to stdout.").String()
	styleFile  = app.Flag("style", "YAML style file.").Short('s').ExistingFile()
	lambda     = app.Flag("lambda", "Split edges longer than this share of the diameter.").Default("-1").Float64()
	k          = app.Flag("k", "Maximum number of edge moves.").Default("-1").Int()
	count      = app.Flag("orientations", "Number of regular orientations.").Default("0").Int()
	phase      = app.Flag("phase", "Rotation of the regular orientations, in degrees.").String()
	epsilon    = app.Flag("epsilon", "Share of an aligned deviating edge kept straight.").Default("-1").Float64()
	layers     = app.Flag("layers", "Directory to write auxiliary layers to.").String()
	snapshots  = app.Flag("snapshots", "Directory to write a PNG per pipeline checkpoint to.").String()
	inline     = app.Flag("imgcat", "Print snapshots to the terminal.").Bool()
	verify     = app.Flag("verify", "Check the subdivision after every stage.").Bool()
	verbose    = app.Flag("verbose", "Log pipeline progress to stderr.").Short('v').Bool()
	drawLabels = app.Flag("labels", "Label vertices in snapshots.").Bool()
	dump       = app.Flag("dump", "Print the schematized subdivision to stderr.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	log.SetFlags(0)
	log.SetPrefix("schematize: ")

	st, err := loadStyle()
	if err != nil {
		log.Fatalf("%v", err)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
	fc, err := schemapify.ParseInput(data)
	if err != nil {
		log.Fatalf("%v", err)
	}
	s, err := schemapify.BuildSubdivision(fc, st)
	if err != nil {
		log.Fatalf("%v", err)
	}

	opts := schemapify.Options{Verify: *verify}
	if *verbose {
		opts.Logger = log.New(os.Stderr, "", log.Ltime)
	}
	if *snapshots != "" {
		if err := os.MkdirAll(*snapshots, 0o755); err != nil {
			log.Fatalf("failed to create snapshot directory: %v", err)
		}
		opts.Snapshot = snapshotWriter(*snapshots)
	}

	result, err := schemapify.Schematize(s, st, opts)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *dump {
		writeDump(os.Stderr, s, result)
	}
	if err := writeJSON(*output, schemapify.ToOutputFormat(s)); err != nil {
		log.Fatalf("%v", err)
	}
	if *layers != "" {
		if err := os.MkdirAll(*layers, 0o755); err != nil {
			log.Fatalf("failed to create layer directory: %v", err)
		}
		for name, layer := range schemapify.Layers(s, result) {
			if err := writeJSON(filepath.Join(*layers, name+".json"), layer); err != nil {
				log.Fatalf("%v", err)
			}
		}
	}
}

func loadStyle() (style.Style, error) {
	st := style.Default()
	if *styleFile != "" {
		f, err := os.Open(*styleFile)
		if err != nil {
			return style.Style{}, err
		}
		defer f.Close()
		if st, err = style.Load(f, st); err != nil {
			return style.Style{}, err
		}
	}

	if *lambda >= 0 {
		st.Lambda = *lambda
	}
	if *k >= 0 {
		st.K = *k
	}
	if *count > 0 {
		st.C = style.Orientations{Count: *count, Phase: st.C.Phase}
	}
	if *phase != "" {
		degrees, err := strconv.ParseFloat(*phase, 64)
		if err != nil {
			return style.Style{}, errors.Wrapf(err, "invalid phase %q", *phase)
		}
		st.C.Phase = degrees * math.Pi / 180
	}
	if *epsilon >= 0 {
		st.StaircaseEpsilon = *epsilon
	}
	return st, st.Validate()
}

func snapshotWriter(dir string) schemapify.SnapshotFunc {
	step := 0
	return func(checkpoint schemapify.Checkpoint, s *dcel.Subdivision, elapsed time.Duration) {
		step++
		path := filepath.Join(dir, fmt.Sprintf("%02d-%s.png", step, checkpoint))
		if err := dbg.SavePNG(s, path, dbg.Options{Labels: *drawLabels}); err != nil {
			log.Printf("snapshot %s: %v", checkpoint, err)
			return
		}
		if *inline {
			fmt.Fprintf(os.Stderr, "%s (%v)\n", checkpoint, elapsed)
			if err := dbg.Cat(path, os.Stderr); err != nil {
				log.Printf("snapshot %s: %v", checkpoint, err)
			}
		}
	}
}

func writeDump(w io.Writer, s *dcel.Subdivision, result *schemapify.Result) {
	dbg.Dump(s, w)
	fmt.Fprintf(w, "%d staircases, simplify %s\n", len(result.Staircases), dbg.Pretty(result.Simplify))
}

type jsonMarshaler interface {
	MarshalJSON() ([]byte, error)
}

func writeJSON(path string, v jsonMarshaler) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", path)
		}
		defer f.Close()
		w = f
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
