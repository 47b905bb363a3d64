package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/thecactoos/enterprise-sub001/internal/domain"
)

// StageName identifica una etapa multiplicativa de la tarifa efectiva.
type StageName string

const (
	StageRegional StageName = "regional"
	StageSeasonal StageName = "seasonal"
)

// StageOrder es el orden en que se aplican las etapas sobre la tarifa del nivel.
// El producto es conmutativo; el orden fija el desglose que se muestra al cliente.
var StageOrder = []StageName{StageRegional, StageSeasonal}

// Stage es un multiplicador con nombre.
type Stage struct {
	Name       StageName
	Multiplier decimal.Decimal
}

// Step es el resultado de aplicar una etapa: la tarifa (sin redondear) tras el multiplicador.
type Step struct {
	Stage
	Rate decimal.Decimal
}

// stageBuilder devuelve la etapa para la línea, o false si no aplica.
type stageBuilder func(Line) (Stage, bool, error)

var stageBuilders = map[StageName]stageBuilder{
	StageRegional: regionalStage,
	StageSeasonal: seasonalStage,
}

// BuildStages resuelve las etapas de la línea en el orden dado.
func BuildStages(line Line, order []StageName) ([]Stage, error) {
	stages := make([]Stage, 0, len(order))
	for _, name := range order {
		build, ok := stageBuilders[name]
		if !ok {
			return nil, fmt.Errorf("%w: etapa desconocida %q", domain.ErrInvalidPricingParameter, name)
		}
		st, apply, err := build(line)
		if err != nil {
			return nil, err
		}
		if apply {
			stages = append(stages, st)
		}
	}
	return stages, nil
}

// Fold aplica las etapas en orden sobre la tarifa inicial. No redondea.
func Fold(start decimal.Decimal, stages []Stage) (decimal.Decimal, []Step) {
	rate := start
	steps := make([]Step, 0, len(stages))
	for _, st := range stages {
		rate = rate.Mul(st.Multiplier)
		steps = append(steps, Step{Stage: st, Rate: rate})
	}
	return rate, steps
}

// regionalStage usa la tabla de zonas; para "other" (o sin zona) usa el multiplicador
// propio del servicio si lo tiene.
func regionalStage(line Line) (Stage, bool, error) {
	zone, err := ParseZone(string(line.Zone))
	if err != nil {
		return Stage{}, false, err
	}
	m, _ := zone.Multiplier()
	if zone == ZoneOther && line.Rates.RegionalMultiplier.Valid {
		m = line.Rates.RegionalMultiplier.Decimal
		if !inRange(m, RegionalMin, RegionalMax) {
			return Stage{}, false, fmt.Errorf("%w: multiplicador regional %s fuera de [%s, %s]",
				domain.ErrInvalidPricingParameter, m, RegionalMin, RegionalMax)
		}
	}
	return Stage{Name: StageRegional, Multiplier: m}, true, nil
}

func seasonalStage(line Line) (Stage, bool, error) {
	active := line.Rates.Seasonal.Active
	if line.SeasonalOverride != nil {
		active = *line.SeasonalOverride
	}
	if !active {
		return Stage{}, false, nil
	}
	m := line.Rates.Seasonal.Multiplier
	if !inRange(m, SeasonalMin, SeasonalMax) {
		return Stage{}, false, fmt.Errorf("%w: multiplicador estacional %s fuera de [%s, %s]",
			domain.ErrInvalidPricingParameter, m, SeasonalMin, SeasonalMax)
	}
	return Stage{Name: StageSeasonal, Multiplier: m}, true, nil
}
