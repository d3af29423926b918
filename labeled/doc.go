// Package labeled implements the three-axis labeled numeric array consumed by
// the aggregation engine.
//
// An Array has a spatial, a temporal and a data axis. Each axis holds an
// ordered sequence of unique labels; a label may be compound, i.e. an ordered
// tuple of sub-dimension components ("EUR.DEU", "wheat.irrigated") kept as a
// structured tuple with a cached joined form. Cells are float64 and may be
// NaN or ±Inf.
//
// Derived arrays (Select, Reshape, Relabel, Map, Mul, Clone) are freshly
// allocated; only Set, SetByLabel and SetLane write in place.
//
//	x, _ := labeled.New(
//	    labeled.NewAxis("region", "DEU", "FRA"),
//	    labeled.NewAxis("year", "y2020"),
//	    labeled.NewAxis("variable", "pop"),
//	)
//	_ = x.SetByLabel("DEU", "y2020", "pop", 83.2)
package labeled
