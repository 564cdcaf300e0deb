// Copyright (c) 2025 The demandgraph authors
// SPDX-License-Identifier: MIT

// Command dcgdemo exercises the DCG engine end to end with the
// incremental-arithmetic example from the package's test suite: three
// cells, a two-level sum, and a Set that only dirties part of the
// graph.
package main

import (
	"fmt"
	"log"
	"os"

	dcg "github.com/demandgraph/dcg"
	"github.com/demandgraph/dcg/internal/engineconfig"
)

var sumPP = dcg.NewProgPt("dcgdemo.sum")

func sum(e *dcg.Engine, args [2]dcg.Art[int], _ struct{}) (int, error) {
	a, err := dcg.Force(e, args[0])
	if err != nil {
		return 0, err
	}
	b, err := dcg.Force(e, args[1])
	if err != nil {
		return 0, err
	}
	return a + b, nil
}

func main() {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if inv, ok := r.(*dcg.InvariantError); ok {
			log.Fatalf("dcgdemo: engine aborted: %v", inv)
		}
		panic(r)
	}()

	cfg := engineconfig.DefaultEngineConfig()
	cfg.Logger.Level = "debug"
	if path := os.Getenv("DCGDEMO_CONFIG"); path != "" {
		loaded, err := engineconfig.Load(path)
		if err != nil {
			log.Fatalf("dcgdemo: loading config: %v", err)
		}
		cfg = loaded
	}

	e := dcg.New(dcg.WithConfig(cfg))

	nx := e.NameOfString("x")
	ny := e.NameOfString("y")
	nz := e.NameOfString("z")
	ns := e.NameOfString("s")
	nr := e.NameOfString("r")

	x := dcg.Cell(e, nx, 1)
	y := dcg.Cell(e, ny, 2)
	z := dcg.Cell(e, nz, 3)

	s, err := dcg.Thunk(e, dcg.Nominal(ns), sumPP, sum, [2]dcg.Art[int]{x.Art(), y.Art()}, struct{}{})
	if err != nil {
		log.Fatalf("dcgdemo: allocating s: %v", err)
	}
	r, err := dcg.Thunk(e, dcg.Nominal(nr), sumPP, sum, [2]dcg.Art[int]{s, z.Art()}, struct{}{})
	if err != nil {
		log.Fatalf("dcgdemo: allocating r: %v", err)
	}

	v, delta := dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, r)
		if err != nil {
			log.Fatalf("dcgdemo: forcing r: %v", err)
		}
		return v
	})
	fmt.Printf("r = %d (evals=%d)\n", v, delta.Eval)

	if err := dcg.Set(e, z, 30); err != nil {
		log.Fatalf("dcgdemo: setting z: %v", err)
	}

	v, delta = dcg.Cnt(e, func(e *dcg.Engine) int {
		v, err := dcg.Force(e, r)
		if err != nil {
			log.Fatalf("dcgdemo: re-forcing r: %v", err)
		}
		return v
	})
	fmt.Printf("r = %d after set(z, 30) (evals=%d, changeprop=%d, dirty=%d)\n", v, delta.Eval, delta.ChangeProp, delta.Dirty)

	if err := e.Dump(os.Stdout); err != nil {
		log.Fatalf("dcgdemo: dump: %v", err)
	}
}
