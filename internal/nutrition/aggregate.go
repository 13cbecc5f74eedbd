package nutrition

// Item carries the four macro values of a single line item.
type Item struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Totals is the componentwise sum over a set of items.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Sum aggregates items into totals. An empty or nil slice yields all zeros.
// The result does not depend on item order. No rounding is applied; display
// rounding belongs to the caller.
func Sum(items []Item) Totals {
	var t Totals
	for _, it := range items {
		t.Calories += it.Calories
		t.Protein += it.Protein
		t.Carbs += it.Carbs
		t.Fat += it.Fat
	}
	return t
}

// Add combines two totals componentwise.
func Add(a, b Totals) Totals {
	return Totals{
		Calories: a.Calories + b.Calories,
		Protein:  a.Protein + b.Protein,
		Carbs:    a.Carbs + b.Carbs,
		Fat:      a.Fat + b.Fat,
	}
}

// ScalePer100 converts per-100-unit catalog figures to a concrete portion.
// Scaling happens once, when the line item is created; stored values are
// never rescaled afterwards.
func ScalePer100(per100 Item, portionSize float64) Item {
	m := portionSize / 100
	return Item{
		Calories: per100.Calories * m,
		Protein:  per100.Protein * m,
		Carbs:    per100.Carbs * m,
		Fat:      per100.Fat * m,
	}
}
