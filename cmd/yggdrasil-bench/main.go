package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"reflect"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/yggdrasil/geometry"
	"github.com/aukilabs/yggdrasil/spatial"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

var (
	// The yggdrasil version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "yggdrasil_info",
		Help:        "Yggdrasil information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	AdminAddr       string  `cli:""        env:"YGGDRASIL_ADMIN_ADDR"        help:"Admin listening address where Prometheus metrics are exposed."`
	ObjectCount     int     `cli:""        env:"YGGDRASIL_OBJECT_COUNT"      help:"The number of objects tracked by the tree."`
	WorldSize       float64 `cli:""        env:"YGGDRASIL_WORLD_SIZE"        help:"The side length of the cubic world objects move in."`
	Expansion       float64 `cli:""        env:"YGGDRASIL_EXPANSION"         help:"The AABB expansion margin of the tree."`
	Rounds          int     `cli:""        env:"YGGDRASIL_ROUNDS"            help:"The number of simulation rounds."`
	QueriesPerRound int     `cli:",hidden" env:"YGGDRASIL_QUERIES_PER_ROUND" help:"The number of queries issued per round."`
	ChurnPerRound   int     `cli:",hidden" env:"YGGDRASIL_CHURN_PER_ROUND"   help:"The number of objects removed and re-added per round."`
	Seed            int64   `cli:",hidden" env:"YGGDRASIL_SEED"              help:"Seed for the workload random generator."`
	LogLevel        string  `cli:""        env:"YGGDRASIL_LOG_LEVEL"         help:"Log level (debug|info|warning|error)."`
	LogIndent       bool    `cli:""        env:"YGGDRASIL_LOG_INDENT"        help:"Indent logs."`
	Version         bool    `cli:""        env:"-"                           help:"Show version."`
	Help            bool    `cli:""        env:"-"                           help:"Show help."`
}

// entity is a synthetic tracked object: a payload with a stable identity
// and a box drifting through the world.
type entity struct {
	ID       uuid.UUID
	TreeID   spatial.ID
	AABB     geometry.AABB
	Velocity geometry.Vector3
}

type result struct {
	Rounds        int           `json:"rounds"`
	Objects       int           `json:"objects"`
	Reinserts     int           `json:"reinserts"`
	QueryHits     int           `json:"query_hits"`
	FrustumHits   int           `json:"frustum_hits"`
	NodeCapacity  uint32        `json:"node_capacity"`
	FreeNodeCount uint32        `json:"free_node_count"`
	Duration      time.Duration `json:"duration"`
}

func main() {
	conf := config{
		AdminAddr:       ":18191",
		ObjectCount:     10000,
		WorldSize:       1000,
		Expansion:       0.5,
		Rounds:          100,
		QueriesPerRound: 50,
		ChurnPerRound:   100,
		Seed:            time.Now().UnixNano(),
		LogLevel:        logs.InfoLevel.String(),
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Runs a synthetic workload against a yggdrasil spatial tree.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if conf.AdminAddr != "" {
		var admin http.ServeMux
		admin.Handle("/metrics", promhttp.Handler())

		go func() {
			logs.WithTag("admin_addr", conf.AdminAddr).Info("admin endpoint listening")
			if err := http.ListenAndServe(conf.AdminAddr, &admin); err != nil {
				logs.Warn(errors.New("admin endpoint failed").Wrap(err))
			}
		}()
	}

	res, err := run(ctx, conf)
	if err != nil {
		logs.Fatal(err)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logs.Fatal(errors.New("encoding results failed").Wrap(err))
	}
	fmt.Println((string)(out))
}

func validateConfig(conf config) error {
	if conf.ObjectCount <= 0 {
		return errors.New("object count must be positive").
			WithTag("object_count", conf.ObjectCount)
	}
	if conf.WorldSize <= 0 {
		return errors.New("world size must be positive").
			WithTag("world_size", conf.WorldSize)
	}
	if conf.Expansion < 0 {
		return errors.New("expansion must not be negative").
			WithTag("expansion", conf.Expansion)
	}
	if conf.Rounds <= 0 {
		return errors.New("rounds must be positive").
			WithTag("rounds", conf.Rounds)
	}
	return nil
}

func run(ctx context.Context, conf config) (result, error) {
	rng := rand.New(rand.NewSource(conf.Seed))
	world := (float32)(conf.WorldSize)

	tree := spatial.NewTree[*entity]((uint32)(2*conf.ObjectCount), (float32)(conf.Expansion))

	logs.WithTag("object_count", conf.ObjectCount).
		WithTag("rounds", conf.Rounds).
		WithTag("seed", conf.Seed).
		Info("populating tree")

	entities := make([]*entity, 0, conf.ObjectCount)
	for i := 0; i < conf.ObjectCount; i++ {
		e := newEntity(rng, world)
		e.TreeID = tree.Add(e, e.AABB)
		entities = append(entities, e)
	}
	if err := tree.CheckInvariants(); err != nil {
		return result{}, errors.New("tree invariants violated after population").Wrap(err)
	}

	res := result{
		Rounds:  conf.Rounds,
		Objects: conf.ObjectCount,
	}
	start := time.Now()

	for round := 0; round < conf.Rounds; round++ {
		if ctx.Err() != nil {
			return result{}, ctx.Err()
		}

		// move every entity, bouncing off the world bounds:
		for _, e := range entities {
			e.step(world)
			if tree.Update(e.TreeID, e.AABB) {
				res.Reinserts++
			}
		}

		// box and frustum queries at random spots:
		for i := 0; i < conf.QueriesPerRound; i++ {
			region := regionAround(randomPoint(rng, world), 25)
			tree.Query(func(*entity) bool {
				res.QueryHits++
				return true
			}, region)

			tree.QueryFrustum(func(*entity) bool {
				res.FrustumHits++
				return true
			}, frustumAround(randomPoint(rng, world), 50))
		}

		// churn: retire random entities and track fresh ones.
		for i := 0; i < conf.ChurnPerRound; i++ {
			j := rng.Intn(len(entities))
			tree.Remove(entities[j].TreeID)

			e := newEntity(rng, world)
			e.TreeID = tree.Add(e, e.AABB)
			entities[j] = e
		}

		if err := tree.CheckInvariants(); err != nil {
			return result{}, errors.New("tree invariants violated").
				WithTag("round", round).
				Wrap(err)
		}

		logs.WithTag("round", round).
			WithTag("node_capacity", tree.GetNodeCapacity()).
			WithTag("reinserts", res.Reinserts).
			Debug("round done")
	}

	res.Duration = time.Since(start)
	res.NodeCapacity = tree.GetNodeCapacity()
	res.FreeNodeCount = tree.ComputeFreeNodeCount()
	return res, nil
}

func newEntity(rng *rand.Rand, world float32) *entity {
	center := randomPoint(rng, world)
	return &entity{
		ID:   uuid.New(),
		AABB: geometry.AABBFromCenterAndExtents(center, geometry.NewVector3(0.5, 0.5, 0.5)),
		Velocity: geometry.NewVector3(
			rng.Float32()*2-1,
			rng.Float32()*2-1,
			rng.Float32()*2-1,
		),
	}
}

func (e *entity) step(world float32) {
	center := geometry.Add(e.AABB.Center(), e.Velocity)

	if center.X < 0 || center.X > world {
		e.Velocity.X = -e.Velocity.X
	}
	if center.Y < 0 || center.Y > world {
		e.Velocity.Y = -e.Velocity.Y
	}
	if center.Z < 0 || center.Z > world {
		e.Velocity.Z = -e.Velocity.Z
	}

	e.AABB = geometry.AABBFromCenterAndExtents(center, e.AABB.Extents())
}

func randomPoint(rng *rand.Rand, world float32) geometry.Vector3 {
	return geometry.NewVector3(
		rng.Float32()*world,
		rng.Float32()*world,
		rng.Float32()*world,
	)
}

func regionAround(center geometry.Vector3, extent float32) geometry.AABB {
	return geometry.AABBFromCenterAndExtents(center, geometry.NewVector3(extent, extent, extent))
}

// frustumAround bounds a cube centered on center with inward-facing
// planes, a stand-in for a camera frustum.
func frustumAround(center geometry.Vector3, extent float32) geometry.Frustum {
	min := geometry.Sub(center, geometry.NewVector3(extent, extent, extent))
	max := geometry.Add(center, geometry.NewVector3(extent, extent, extent))

	return geometry.FrustumFromPlanes(
		geometry.PlaneFromPositionAndNormal(geometry.NewVector3(center.X, center.Y, max.Z), geometry.NewVector3(0, 0, -1)),
		geometry.PlaneFromPositionAndNormal(geometry.NewVector3(center.X, center.Y, min.Z), geometry.NewVector3(0, 0, 1)),
		geometry.PlaneFromPositionAndNormal(geometry.NewVector3(min.X, center.Y, center.Z), geometry.NewVector3(1, 0, 0)),
		geometry.PlaneFromPositionAndNormal(geometry.NewVector3(max.X, center.Y, center.Z), geometry.NewVector3(-1, 0, 0)),
		geometry.PlaneFromPositionAndNormal(geometry.NewVector3(center.X, max.Y, center.Z), geometry.NewVector3(0, -1, 0)),
		geometry.PlaneFromPositionAndNormal(geometry.NewVector3(center.X, min.Y, center.Z), geometry.NewVector3(0, 1, 0)),
	)
}
