package blueprint

import "fmt"

// Loop renders Template once per row of Data, after the base fragment.
//
// Template output is placed in absolute document coordinates, exactly as
// if it were part of the base fragment; the template chooses
// non-overlapping offsets itself, typically from the row index.
type Loop struct {
	Data     []any
	Template func(row any, index int) (*Fragment, error)
}

// Each builds a Loop over typed rows. Rows later added to Data must
// also be of type R; any other row fails the generation.
func Each[R any](rows []R, template func(row R, index int) *Fragment) *Loop {
	data := make([]any, len(rows))
	for i, row := range rows {
		data[i] = row
	}
	return &Loop{
		Data: data,
		Template: func(row any, index int) (*Fragment, error) {
			v, ok := row.(R)
			if !ok && row != nil {
				return nil, fmt.Errorf("row is %T, want %T", row, v)
			}
			return template(v, index), nil
		},
	}
}

// expand renders every row of l in order.
func (r *renderer) expand(l *Loop) error {
	if l == nil || len(l.Data) == 0 {
		return nil
	}
	if l.Template == nil {
		return fmt.Errorf("loop has %d rows but no template", len(l.Data))
	}
	for i, row := range l.Data {
		f, err := l.Template(row, i)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if f == nil {
			continue
		}
		if len(f.Loops) > 0 || f.Options != nil {
			r.log.Warn("blueprint: loops and options in a loop template are ignored", "row", i)
		}
		if err := r.render(f); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
