package puffy

// Time is the frame clock. Delta is the duration of the current tick in
// seconds.
type Time struct {
	Delta   float64
	Elapsed float64
	Frame   uint64
}

func (t *Time) advance(dt float64) {
	t.Delta = dt
	t.Elapsed += dt
	t.Frame++
}
