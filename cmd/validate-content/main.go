package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/inventory"
	"github.com/ltroylove/CrimsionMud3-sub001/internal/game/stats"
)

func main() {
	itemsDir := flag.String("items", "data/items", "path to item template YAML directory")
	capacityPath := flag.String("capacity", "data/capacity.yaml", "path to carrying capacity table")
	flag.Parse()

	start := time.Now()

	catalog, err := inventory.LoadCatalog(*itemsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	caps, err := stats.LoadCapacityTable(*capacityPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	byCategory := make(map[string]int)
	for _, tmpl := range catalog.All() {
		byCategory[tmpl.Category]++
	}
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	fmt.Printf("%d item templates loaded from %s\n", len(catalog.All()), *itemsDir)
	for _, cat := range categories {
		fmt.Printf("  %-10s %d\n", cat, byCategory[cat])
	}
	fmt.Printf("capacity table: strength 18 carries %d weight, dexterity 18 carries %d items\n",
		caps.MaxWeight(18), caps.MaxItemCount(18))
	fmt.Printf("content valid in %s\n", time.Since(start).Round(time.Millisecond))
}
