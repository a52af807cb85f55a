package reactive

type EffectType int

const (
	// derived values are recomputed before any listener observes the new state
	EffectDerived EffectType = iota
	EffectUser
)

type EffectQueue struct {
	effects map[EffectType][]func()
}

func NewEffectQueue() *EffectQueue {
	effects := make(map[EffectType][]func())
	effects[EffectDerived] = make([]func(), 0)
	effects[EffectUser] = make([]func(), 0)

	return &EffectQueue{effects}
}

func (q *EffectQueue) Enqueue(typ EffectType, fn func()) {
	q.effects[typ] = append(q.effects[typ], fn)
}

func (q *EffectQueue) RunEffects(typ EffectType) {
	effects := q.effects[typ]
	q.effects[typ] = nil

	for _, effect := range effects {
		effect()
	}
}

func (q *EffectQueue) Empty() bool {
	for _, effects := range q.effects {
		if len(effects) > 0 {
			return false
		}
	}

	return true
}
