// Package schemapify turns a subdivision of the plane into polygons into a
// schematic map: every edge ends up in one of a fixed set of orientations,
// while the topology of the input and the area of every face are kept.
//
// A run has three phases. Edges are classified against the orientation set,
// every edge that is not yet aligned is replaced by an aligned staircase, and
// finally pairs of edges are moved to remove as many vertices as possible
// without changing any face's area.
package schemapify

import (
	"io"
	"log"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
	"github.com/jakoblistabarth/schemapify-sub001/internal"
	"github.com/jakoblistabarth/schemapify-sub001/orientation"
	"github.com/jakoblistabarth/schemapify-sub001/simplify"
	"github.com/jakoblistabarth/schemapify-sub001/staircase"
	"github.com/jakoblistabarth/schemapify-sub001/style"
)

// Checkpoint names a point in the pipeline at which snapshots are taken.
type Checkpoint string

const (
	CheckpointLoad             Checkpoint = "load"
	CheckpointSubdivide        Checkpoint = "subdivide"
	CheckpointClassify         Checkpoint = "classify"
	CheckpointStaircaseRegions Checkpoint = "staircase-regions"
	CheckpointStaircase        Checkpoint = "staircase"
	CheckpointSimplify         Checkpoint = "simplify"
)

// SnapshotFunc observes the subdivision after a checkpoint. It must not
// modify the subdivision. elapsed is the time the stage took.
type SnapshotFunc func(checkpoint Checkpoint, s *dcel.Subdivision, elapsed time.Duration)

type Options struct {
	Logger   *log.Logger
	Snapshot SnapshotFunc
	// Verify checks the subdivision's structure after every stage.
	Verify bool
}

// Stage is one step of the pipeline. Stages mutate the subdivision in place.
type Stage interface {
	Checkpoint() Checkpoint
	Run(s *dcel.Subdivision) error
}

// Result is what a schematization leaves besides the mutated subdivision.
type Result struct {
	Staircases []*staircase.Staircase
	Simplify   simplify.Result
	Elapsed    map[Checkpoint]time.Duration
}

// ParseInput decodes a GeoJSON feature collection.
func ParseInput(data []byte) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, dcel.InvalidInputError{Reason: err.Error()}
	}
	return fc, nil
}

// BuildSubdivision builds the subdivision of a feature collection. The style
// is validated here so that a bad style is reported before any work is done.
func BuildSubdivision(fc *geojson.FeatureCollection, st style.Style) (s *dcel.Subdivision, err error) {
	defer func() {
		if recoveredErr := internal.HandlePanicRecover(recover()); recoveredErr != nil {
			s = nil
			err = recoveredErr
		}
	}()
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return dcel.FromFeatureCollection(fc)
}

// ToOutputFormat emits one MultiPolygon feature per input feature.
func ToOutputFormat(s *dcel.Subdivision) *geojson.FeatureCollection {
	return s.ToFeatureCollection()
}

// Layers returns the auxiliary layers of a schematized subdivision, keyed by
// name.
func Layers(s *dcel.Subdivision, result *Result) map[string]*geojson.FeatureCollection {
	layers := map[string]*geojson.FeatureCollection{
		"vertices": s.VerticesLayer(),
		"faces":    s.FacesLayer(),
		"edges":    s.EdgesLayer(),
	}
	if result != nil {
		layers["staircase-regions"] = staircase.RegionsLayer(result.Staircases)
	}
	return layers
}

// Schematize runs the whole pipeline on s.
func Schematize(s *dcel.Subdivision, st style.Style, opts Options) (result *Result, err error) {
	defer func() {
		if recoveredErr := internal.HandlePanicRecover(recover()); recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	p, err := NewPipeline(st, opts)
	if err != nil {
		return nil, err
	}
	return p.Run(s)
}

// Pipeline runs its stages in order.
type Pipeline struct {
	Stages  []Stage
	options Options
	plan    *staircasePlan
	engine  *simplifyStage
}

// NewPipeline assembles the standard stages for a style.
func NewPipeline(st style.Style, opts Options) (*Pipeline, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	c, err := orientation.New(st.C)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	plan := &staircasePlan{generator: staircase.Generator{
		C:       c,
		Epsilon: st.StaircaseEpsilon,
		Logger:  opts.Logger,
	}}
	engine := &simplifyStage{engine: simplify.Engine{MaxMoves: st.K, Logger: opts.Logger}}
	return &Pipeline{
		Stages: []Stage{
			subdivideStage{lambda: st.Lambda},
			classifyStage{classifier: orientation.Classifier{C: c}},
			planStaircases{plan},
			applyStaircases{plan},
			engine,
		},
		options: opts,
		plan:    plan,
		engine:  engine,
	}, nil
}

func (p *Pipeline) snapshot(checkpoint Checkpoint, s *dcel.Subdivision, elapsed time.Duration) {
	if p.options.Snapshot != nil {
		p.options.Snapshot(checkpoint, s, elapsed)
	}
}

func (p *Pipeline) Run(s *dcel.Subdivision) (*Result, error) {
	logger := p.options.Logger
	result := &Result{Elapsed: make(map[Checkpoint]time.Duration)}
	p.snapshot(CheckpointLoad, s, 0)
	logger.Printf("load: %d vertices, %d faces", s.VertexCount(), s.FaceCount())

	for _, stage := range p.Stages {
		start := time.Now()
		if err := stage.Run(s); err != nil {
			return nil, errors.Wrapf(err, "stage %s", stage.Checkpoint())
		}
		elapsed := time.Since(start)
		result.Elapsed[stage.Checkpoint()] = elapsed
		logger.Printf("%s: %d vertices after %v", stage.Checkpoint(), s.VertexCount(), elapsed)
		if p.options.Verify {
			if err := s.Verify(); err != nil {
				return nil, errors.Wrapf(err, "subdivision broken after %s", stage.Checkpoint())
			}
		}
		p.snapshot(stage.Checkpoint(), s, elapsed)
	}

	if p.plan != nil {
		result.Staircases = p.plan.stairs
	}
	if p.engine != nil {
		result.Simplify = p.engine.result
	}
	return result, nil
}

type subdivideStage struct {
	lambda float64
}

func (st subdivideStage) Checkpoint() Checkpoint { return CheckpointSubdivide }

func (st subdivideStage) Run(s *dcel.Subdivision) error {
	_, err := s.SplitLongEdges(st.lambda * s.Diameter())
	return err
}

type classifyStage struct {
	classifier orientation.Classifier
}

func (st classifyStage) Checkpoint() Checkpoint { return CheckpointClassify }

func (st classifyStage) Run(s *dcel.Subdivision) error {
	return st.classifier.Run(s)
}

// staircasePlan carries the planned staircases from the planning stage to
// the stage that splices them in.
type staircasePlan struct {
	generator staircase.Generator
	stairs    []*staircase.Staircase
}

type planStaircases struct {
	plan *staircasePlan
}

func (st planStaircases) Checkpoint() Checkpoint { return CheckpointStaircaseRegions }

func (st planStaircases) Run(s *dcel.Subdivision) error {
	stairs, err := st.plan.generator.Plan(s)
	if err != nil {
		return err
	}
	st.plan.stairs = stairs
	return nil
}

type applyStaircases struct {
	plan *staircasePlan
}

func (st applyStaircases) Checkpoint() Checkpoint { return CheckpointStaircase }

func (st applyStaircases) Run(s *dcel.Subdivision) error {
	return st.plan.generator.Apply(s, st.plan.stairs)
}

type simplifyStage struct {
	engine simplify.Engine
	result simplify.Result
}

func (st *simplifyStage) Checkpoint() Checkpoint { return CheckpointSimplify }

func (st *simplifyStage) Run(s *dcel.Subdivision) error {
	result, err := st.engine.Run(s)
	st.result = result
	return err
}
