// Package codegen selects the emitter for a language and runs shaping, graph building, code
// processors and rendering for one pass.
package codegen

import (
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/riagen/internal/engine/processor"
	"go.trai.ch/riagen/internal/engine/proxygen"
	"go.trai.ch/riagen/internal/engine/shaping"
	"go.trai.ch/zerr"
)

// Dispatcher holds one emitter per language and the code processor registry.
type Dispatcher struct {
	emitters   map[domain.Language]ports.CodeEmitter
	processors *processor.Registry
}

// NewDispatcher creates a dispatcher. A later emitter for the same language replaces an earlier one.
func NewDispatcher(processors *processor.Registry, emitters ...ports.CodeEmitter) *Dispatcher {
	if processors == nil {
		processors = processor.NewRegistry()
	}
	d := &Dispatcher{emitters: make(map[domain.Language]ports.CodeEmitter), processors: processors}
	for _, e := range emitters {
		d.emitters[e.Language()] = e
	}
	return d
}

// Emitter returns the emitter registered for a language identifier.
func (d *Dispatcher) Emitter(language string) (ports.CodeEmitter, error) {
	lang, err := domain.ParseLanguage(language)
	if err != nil {
		return nil, err
	}
	e, ok := d.emitters[lang]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoGeneratorFound, "no emitter registered"), "language", language)
	}
	return e, nil
}

// GenerateCode produces the proxy source for descriptions. It returns "" whenever log holds
// errors at the end of the pass. A failing code processor is the only error returned; every
// other problem is logged.
func (d *Dispatcher) GenerateCode(
	log ports.BuildLog,
	opts domain.GenerationOptions,
	descriptions []*domain.DomainServiceDescription,
	types *domain.TypeTable,
	share ports.SharedCodeService,
) (string, error) {
	emitter, err := d.Emitter(opts.Language)
	if err != nil {
		log.Error(err)
		return "", nil
	}

	model := shaping.Build(descriptions, types, share, log)
	if log.HasLoggedErrors() {
		return "", nil
	}

	unit, mapping := proxygen.Build(model, log)
	if err := d.processors.Run(log, emitter, model.Descriptions(), unit, mapping); err != nil {
		return "", err
	}
	if log.HasLoggedErrors() {
		return "", nil
	}

	code, err := emitter.Emit(unit, opts)
	if err != nil {
		log.Error(zerr.With(zerr.Wrap(err, "failed to render generated code"), "language", string(emitter.Language())))
		return "", nil
	}
	if code == "" {
		log.Error(zerr.With(zerr.Wrap(domain.ErrGenerationFailed, "emitter produced no code"), "language", string(emitter.Language())))
		return "", nil
	}
	return code, nil
}
