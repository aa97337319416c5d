package ward

import (
	"math/big"
	"reflect"
)

// towerAccepts reports whether the numeric tower classifies v at or
// below the given level. Integers are accepted at every level, floats
// from real up, complex values only at the top; math/big values slot in
// at their natural levels. Classification follows tower subsumption, not
// the nominal type hierarchy.
func towerAccepts(level Tower, v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return true
	case float32, float64:
		return level >= TowerReal
	case complex64, complex128:
		return level >= TowerComplex
	case *big.Int:
		return true
	case *big.Rat:
		return level >= TowerRational
	case *big.Float:
		return level >= TowerReal
	}
	if v == nil {
		return false
	}
	// Named types over numeric kinds (type Celsius float64) classify by
	// their underlying kind.
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	case reflect.Float32, reflect.Float64:
		return level >= TowerReal
	case reflect.Complex64, reflect.Complex128:
		return level >= TowerComplex
	default:
		return false
	}
}
