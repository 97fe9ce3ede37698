// Command repliconctl is a one-shot demonstration of the replication
// engine's full lifecycle: classify two record types, compile their
// codecs, bind a receiver, serialize a handful of wire messages onto a
// bitio buffer, and dispatch them back through the same registry.
package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/replicon-net/replicon/internal/config"
	"github.com/replicon-net/replicon/internal/core/replication"
	"github.com/replicon-net/replicon/internal/core/replication/bitio"
	"github.com/replicon-net/replicon/internal/injector"
	"github.com/replicon-net/replicon/internal/observability/log"
)

// demoEntityID derives a uint32 entity id from a fresh UUID's leading
// bytes. The engine never generates entity ids itself (spec.md §6: it
// never owns instances), so the demo stands in for whatever allocator a
// real server would use.
func demoEntityID() uint32 {
	id := uuid.New()
	return binary.BigEndian.Uint32(id[:4])
}

// AbilityState is a 2-variant enum demo fixture, mirroring spec.md §8's S1
// seed scenario.
type AbilityState uint8

const (
	AbilityIdle AbilityState = iota
	AbilityRunning
)

func (AbilityState) VariantCount() int { return 2 }

// Position is the demo composite: a registered Write/Read pair, not a
// classifier-discovered struct.
type Position struct {
	X, Y, Z int16
}

// PlayerState is a Predicted record: the thing every entity's owning
// client predicts locally and the server corrects via masked updates.
type PlayerState struct {
	Counter  int32
	Ability  AbilityState
	Position Position
}

// InputCommand is an Input record: small, high frequency, never diffed
// against server state.
type InputCommand struct {
	Sequence uint32
	Buttons  uint8
}

// playerStore is the demo's Receiver[PlayerState]: entity_id-keyed storage
// the engine never owns.
type playerStore struct {
	logger log.Log
	byID   map[uint32]PlayerState
}

func newPlayerStore(logger log.Log) *playerStore {
	return &playerStore{logger: logger, byID: make(map[uint32]PlayerState)}
}

func (s *playerStore) ReceiveNew(entityID uint32, value PlayerState) {
	s.byID[entityID] = value
	s.logger.Info("player entity created",
		log.Uint32("entity_id", entityID),
		log.Int32("counter", value.Counter),
	)
}

func (s *playerStore) Update(mask uint32, entityID uint32, value PlayerState) {
	s.byID[entityID] = value
	s.logger.Debug("player entity updated",
		log.Uint32("entity_id", entityID),
		log.Uint32("mask", mask),
	)
}

func (s *playerStore) GrabOrCreate(entityID uint32) PlayerState {
	return s.byID[entityID]
}

func (s *playerStore) DestroyComponent(entityID uint32) {
	delete(s.byID, entityID)
	s.logger.Info("player entity destroyed", log.Uint32("entity_id", entityID))
}

// inputSink is the demo's Receiver[InputCommand]. Input records are never
// diffed or persisted by entity — a real server would forward them
// straight into a simulation step.
type inputSink struct {
	logger log.Log
}

func (s *inputSink) ReceiveNew(entityID uint32, value InputCommand) {
	s.logger.Info("input received", log.Uint32("entity_id", entityID), log.Uint32("sequence", value.Sequence))
}

func (s *inputSink) Update(mask uint32, entityID uint32, value InputCommand) {
	s.logger.Debug("input partially updated", log.Uint32("entity_id", entityID), log.Uint32("mask", mask))
}

func (s *inputSink) GrabOrCreate(entityID uint32) InputCommand { return InputCommand{} }

func (s *inputSink) DestroyComponent(entityID uint32) {}

func registerComposites() *replication.CompositeRegistry {
	reg := replication.NewCompositeRegistry()
	err := replication.RegisterComposite[Position](reg,
		func(w replication.BitWriter, p Position) {
			w.WriteBits(uint32(uint16(p.X)), 16)
			w.WriteBits(uint32(uint16(p.Y)), 16)
			w.WriteBits(uint32(uint16(p.Z)), 16)
		},
		func(r replication.BitReader) Position {
			return Position{X: int16(r.ReadBits(16)), Y: int16(r.ReadBits(16)), Z: int16(r.ReadBits(16))}
		},
	)
	if err != nil {
		panic(err)
	}
	return reg
}

func run(ctx context.Context, logger log.Log, cfg config.GeneratorConfig) error {
	records := []replication.RoleRecord{
		replication.Describe[PlayerState](replication.Predicted),
		replication.Describe[InputCommand](replication.Input),
	}

	registry, diags, err := replication.BuildWithConfig(cfg, records, registerComposites())
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	for _, d := range diags {
		logger.Warn("classification diagnostic", log.String("record", d.Record), log.String("message", d.Message))
	}

	players := newPlayerStore(logger)
	inputs := &inputSink{logger: logger}
	if err := registry.Init(
		replication.BindFor[PlayerState](players),
		replication.BindFor[InputCommand](inputs),
	); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	playerID, _ := replication.IDOf[PlayerState](registry)
	entityID := demoEntityID()

	codec, err := replication.Compile[PlayerState](registry)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	// A writer is taken from the pool once per outgoing message and
	// returned immediately after Bytes() is drained, the same borrow
	// pattern a real server's per-tick replication pass would use.
	writers := bitio.NewWriterPool(16)

	w := writers.Get()
	codec.SerializeFull(w, PlayerState{Counter: 1, Ability: AbilityRunning, Position: Position{X: 3, Y: -4, Z: 5}})
	fullBytes := append([]byte(nil), w.Bytes()...)
	writers.Put(w)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	r := bitio.NewReader(fullBytes)
	replication.ReceiveNew(registry, r, entityID, uint32(playerID), players)

	mw := writers.Get()
	codec.SerializeMask(mw, PlayerState{Counter: 2, Ability: AbilityRunning, Position: Position{X: 3, Y: -4, Z: 5}}, 0b001)
	maskBytes := append([]byte(nil), mw.Bytes()...)
	writers.Put(mw)

	replication.ReceiveUpdate(registry, bitio.NewReader(maskBytes), entityID, uint32(playerID), players)

	replication.ReceiveNew(registry, bitio.NewReader(nil), entityID, 0xFFFF, players) // RuntimeMismatch: silent no-op

	logger.Info("demo run complete", log.Int("records", registry.RecordCount()))
	return nil
}

func main() {
	logger := injector.ProvideLogger()

	cfg := config.DefaultConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopCh
		cancel()
	}()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("repliconctl failed", log.Error(err))
		os.Exit(1)
	}
}
