// Package bulkop secuencia operaciones masivas multipaso con aislamiento de
// fallos por ítem: el fallo de un ítem en cualquier paso no impide intentar
// los ítems restantes, y dentro de un ítem el fallo de un sub-paso no aborta
// los sub-pasos siguientes ni el paso principal (limpieza y acción principal
// en modo mejor esfuerzo). Ningún paso se reintenta.
//
// Los fallos por paso nunca se devuelven como error del coordinador: quedan
// registrados como datos dentro del Plan para que el éxito parcial sea
// representable e inspeccionable.
package bulkop

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Tienda-backoffice/pkg/logger"
)

// Step un paso nombrado de un plan de ítem.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// ItemPlan pasos de un ítem: sub-pasos ordenados y un paso principal.
// Invariante: el principal se intenta solo después de haber intentado todos
// los sub-pasos, hayan fallado o no.
type ItemPlan struct {
	SubSteps []Step
	Primary  Step
}

// StepResult resultado registrado de un paso.
type StepResult struct {
	Step string
	Err  error // nil = éxito
}

// OK indica si el paso terminó sin fallo.
func (r StepResult) OK() bool { return r.Err == nil }

// ItemResult resultados de todos los pasos de un ítem.
type ItemResult struct {
	ID       string
	SubSteps []StepResult
	Primary  StepResult
}

// Clean indica si el ítem terminó sin ningún fallo registrado.
func (r ItemResult) Clean() bool {
	if !r.Primary.OK() {
		return false
	}
	for _, s := range r.SubSteps {
		if !s.OK() {
			return false
		}
	}
	return true
}

// Plan resultado agregado de una invocación masiva. Vive lo que dura la
// invocación; se descarta tras informar el resumen.
type Plan struct {
	ID    string // correlación en logs
	Items []ItemResult
}

// Summary resumen visible para el llamador: ítems totalmente exitosos frente
// a ítems con al menos un fallo registrado.
func (p *Plan) Summary() (clean, withFailure int) {
	for _, item := range p.Items {
		if item.Clean() {
			clean++
		} else {
			withFailure++
		}
	}
	return clean, withFailure
}

// Coordinator ejecuta planes por ítem de forma secuencial (no concurrente):
// acota la carga sobre la plataforma y mantiene inequívoca la atribución de
// fallos.
type Coordinator struct {
	log *logger.Logger
}

// NewCoordinator construye el coordinador. log puede ser nil.
func NewCoordinator(log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	return &Coordinator{log: log}
}

// Execute aplica a cada identificador el plan que produce planFor, en orden.
// El error devuelto solo puede venir de la cancelación del contexto entre
// ítems; los fallos de pasos viven dentro del Plan.
func (c *Coordinator) Execute(ctx context.Context, ids []string, planFor func(id string) ItemPlan) (*Plan, error) {
	plan := &Plan{ID: uuid.New().String(), Items: make([]ItemResult, 0, len(ids))}
	log := c.log.With().Str("plan", plan.ID).Logger()

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return plan, err
		}
		plan.Items = append(plan.Items, runItem(ctx, log, id, planFor(id)))
	}

	clean, withFailure := plan.Summary()
	log.Info().Int("exitosos", clean).Int("con_fallo", withFailure).Msg("operación masiva terminada")
	return plan, nil
}

// runItem intenta todos los sub-pasos en orden y después el principal,
// registrando cada resultado.
func runItem(ctx context.Context, log zerolog.Logger, id string, p ItemPlan) ItemResult {
	result := ItemResult{ID: id, SubSteps: make([]StepResult, 0, len(p.SubSteps))}

	for _, step := range p.SubSteps {
		err := step.Run(ctx)
		result.SubSteps = append(result.SubSteps, StepResult{Step: step.Name, Err: err})
		if err != nil {
			log.Warn().Str("item", id).Str("paso", step.Name).Err(err).Msg("sub-paso fallido")
		}
	}

	err := p.Primary.Run(ctx)
	result.Primary = StepResult{Step: p.Primary.Name, Err: err}
	if err != nil {
		log.Warn().Str("item", id).Str("paso", p.Primary.Name).Err(err).Msg("paso principal fallido")
	} else {
		log.Debug().Str("item", id).Msg("ítem procesado")
	}
	return result
}
