package system

import (
	"log/slog"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/logger"
)

// InputSampler produces one tick of raw input.
type InputSampler interface {
	Sample(w *ecs.World, dt float64) (component.Input, error)
}

// SamplerFunc adapts a function to InputSampler.
type SamplerFunc func(w *ecs.World, dt float64) (component.Input, error)

func (f SamplerFunc) Sample(w *ecs.World, dt float64) (component.Input, error) { return f(w, dt) }

// InputSystem fills every Input component from the sampler registered for
// its source. Each sampler runs at most once per tick.
type InputSystem struct {
	samplers map[component.InputSource]InputSampler
	log      *slog.Logger
}

func NewInputSystem() *InputSystem {
	return &InputSystem{
		samplers: make(map[component.InputSource]InputSampler),
		log:      logger.L().With("system", "input"),
	}
}

// Register sets the sampler for a source, replacing any previous one.
func (i *InputSystem) Register(source component.InputSource, sampler InputSampler) *InputSystem {
	if sampler == nil {
		delete(i.samplers, source)
		return i
	}
	i.samplers[source] = sampler
	return i
}

func (i *InputSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	sampled := make(map[component.InputSource]component.Input, len(i.samplers))
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		source := input.Source
		next, ok := sampled[source]
		if !ok {
			next = component.Input{Source: source}
			if sampler, found := i.samplers[source]; found {
				got, err := sampler.Sample(w, dt)
				if err != nil {
					i.log.Warn("sample failed", "entity", e, "err", err)
				} else {
					next = got
					next.Source = source
				}
			}
			sampled[source] = next
		}
		*input = next
	})
}
