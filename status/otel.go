package status

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/elgoog577215-beep/skyfall/status"

// Meter returns the package meter from the global provider, a no-op unless one is installed
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Instrument exposes every bool, int and float metric registered so far as an observable gauge
// Bools report 0 or 1. Metrics registered after this call are not exported
func Instrument(meter metric.Meter, reg *Registry) (metric.Registration, error) {
	type intGauge struct {
		gauge metric.Int64ObservableGauge
		read  func() int64
	}
	type floatGauge struct {
		gauge metric.Float64ObservableGauge
		read  func() float64
	}

	var (
		ints   []intGauge
		floats []floatGauge
		insts  []metric.Observable
		err    error
	)

	addInt := func(name string, read func() int64) {
		if err != nil {
			return
		}
		var g metric.Int64ObservableGauge
		g, err = meter.Int64ObservableGauge(name)
		if err != nil {
			err = fmt.Errorf("creating gauge %s: %w", name, err)
			return
		}
		ints = append(ints, intGauge{g, read})
		insts = append(insts, g)
	}

	reg.Ints.Range(func(k string, v *atomic.Int64) {
		addInt(k, v.Load)
	})
	reg.Bools.Range(func(k string, v *atomic.Bool) {
		addInt(k, func() int64 {
			if v.Load() {
				return 1
			}
			return 0
		})
	})
	reg.Floats.Range(func(k string, v *Float) {
		if err != nil {
			return
		}
		var g metric.Float64ObservableGauge
		g, err = meter.Float64ObservableGauge(k)
		if err != nil {
			err = fmt.Errorf("creating gauge %s: %w", k, err)
			return
		}
		floats = append(floats, floatGauge{g, v.Get})
		insts = append(insts, g)
	})
	if err != nil {
		return nil, err
	}

	r, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for _, g := range ints {
			o.ObserveInt64(g.gauge, g.read())
		}
		for _, g := range floats {
			o.ObserveFloat64(g.gauge, g.read())
		}
		return nil
	}, insts...)
	if err != nil {
		return nil, fmt.Errorf("registering status callback: %w", err)
	}
	return r, nil
}
