// Package processor runs the code processors declared by domain services over the generated graph.
package processor

import (
	"fmt"
	"strings"
	"sync"

	"go.trai.ch/riagen/internal/core/codedom"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Constructor creates a code processor for the language of the emitter.
type Constructor func(ports.CodeEmitter) (ports.CodeProcessor, error)

// Registry maps server processor type names to constructors.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register binds the server type full name to a constructor, replacing any earlier binding.
func (r *Registry) Register(typeName string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[strings.ToLower(typeName)] = ctor
}

// Lookup returns the constructor registered for typeName.
func (r *Registry) Lookup(typeName string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[strings.ToLower(typeName)]
	return ctor, ok
}

// Run invokes the processor of every service that declares one, in service order, after the
// complete graph has been built. Configuration problems are logged and the service is skipped.
// A processor failure is logged and returned; later processors do not run.
func (r *Registry) Run(
	log ports.Logger,
	emitter ports.CodeEmitter,
	services []*domain.DomainServiceDescription,
	unit *codedom.CompileUnit,
	mapping map[string]*codedom.TypeDecl,
) error {
	for _, svc := range services {
		if svc.CodeProcessor == "" {
			continue
		}

		ctor, ok := r.Lookup(svc.CodeProcessor)
		if !ok {
			log.Error(invalid(svc, "no constructor accepting a code generator is registered for it"))
			continue
		}
		proc, err := ctor(emitter)
		if err != nil {
			log.Error(invalid(svc, err.Error()))
			continue
		}
		if proc == nil {
			log.Error(invalid(svc, "constructor returned no processor"))
			continue
		}

		if err := invoke(proc, svc, unit, mapping); err != nil {
			msg := fmt.Sprintf("code processor %s of domain service %s failed: %v", svc.CodeProcessor, svc.FullName(), err)
			wrapped := zerr.With(zerr.Wrap(domain.ErrCodeProcessorFailed, msg), "processor", svc.CodeProcessor)
			wrapped = zerr.With(wrapped, "service", svc.FullName())
			log.Error(wrapped)
			return wrapped
		}
	}
	return nil
}

func invoke(
	proc ports.CodeProcessor,
	svc *domain.DomainServiceDescription,
	unit *codedom.CompileUnit,
	mapping map[string]*codedom.TypeDecl,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return proc.ProcessGeneratedCode(svc, unit, mapping)
}

func invalid(svc *domain.DomainServiceDescription, reason string) error {
	msg := fmt.Sprintf("code processor %s declared by domain service %s is invalid: %s", svc.CodeProcessor, svc.FullName(), reason)
	err := zerr.With(zerr.Wrap(domain.ErrInvalidCodeProcessor, msg), "processor", svc.CodeProcessor)
	return zerr.With(err, "service", svc.FullName())
}
