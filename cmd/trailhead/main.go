// Command trailhead serves the account dashboard.
//
// Configuration is read from the environment or a ".env" file; cf. package ranger.
package main

import (
	"log"

	"github.com/xy-planning-network/trailhead/ranger"
)

func main() {
	cfg, err := ranger.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	rng, err := ranger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Fatal(err.Error(), nil)
	}
}
