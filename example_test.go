package voxgo_test

import (
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/hupe1980/voxgo"
	"github.com/hupe1980/voxgo/codec"
	"github.com/hupe1980/voxgo/record"
	"github.com/hupe1980/voxgo/seg"
	"github.com/hupe1980/voxgo/volume"
)

// Example_boxToSeg demonstrates painting ground-truth boxes into an
// instance segmentation volume.
func Example_boxToSeg() {
	r := record.Record{
		"boxes": []seg.Box{{0, 0, 1, 1}, {2, 2, 3, 3}},
		"id":    "case-0017",
	}

	paint := voxgo.BoxToSeg[uint8]("boxes", "seg", []int{4, 4})

	out, err := paint.Apply(r)
	if err != nil {
		log.Fatal(err)
	}

	vol := out["seg"].(*volume.Volume[uint8])
	fmt.Println(vol.Shape(), vol.Data())
	// Output: [4 4] [1 1 0 0 1 1 0 0 0 0 2 2 0 0 2 2]
}

// Example_segToBox demonstrates recovering per-instance bounding boxes
// from a labeled volume.
func Example_segToBox() {
	vol, err := seg.FromBoxes[uint8]([]seg.Box{{0, 0, 1, 1}, {2, 2, 3, 3}}, 4, 4)
	if err != nil {
		log.Fatal(err)
	}

	decode := voxgo.SegToBox[uint8]("seg", "boxes", 2)

	out, err := decode.Apply(record.Record{"seg": vol})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out["boxes"])
	// Output: [[0 0 1 1] [2 2 3 3]]
}

// Example_instanceToSemantic demonstrates collapsing instance labels into
// semantic classes.
func Example_instanceToSemantic() {
	vol := volume.MustFromData([]uint8{0, 1, 2, 2}, 2, 2)

	// Both instances belong to class 7.
	remap := voxgo.InstanceToSemantic("seg", "sem", []uint8{7, 7})

	out, err := remap.Apply(record.Record{"seg": vol})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out["sem"].(*volume.Volume[uint8]).Data())
	// Output: [0 7 7 7]
}

// Example_popKeys demonstrates dropping entries a later stage must not see.
func Example_popKeys() {
	r := record.Record{"image": "img", "id": "case-1", "debug": 42}

	drop := voxgo.PopKeys(record.Keys{"debug"})

	out, err := drop.Apply(r)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(slices.Sorted(maps.Keys(out)))
	// Output: [id image]
}

// Example_boundaryAdapters demonstrates crossing between keyed records and
// positional sequences.
func Example_boundaryAdapters() {
	r := record.Record{"image": "img-data", "seg": "mask-data"}

	seq, err := voxgo.NewMapToSeq([]string{"image", "seg"}).Apply(r)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(seq)

	back, err := voxgo.NewSeqToMap([]string{"image", "seg"}).Apply(seq)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(back["seg"])
	// Output:
	// [img-data mask-data]
	// mask-data
}

// Example_metrics demonstrates collecting per-application metrics.
func Example_metrics() {
	metrics := &voxgo.BasicMetricsCollector{}

	drop := voxgo.PopKeys(record.Keys{"debug"}, voxgo.WithMetricsCollector(metrics))

	drop.Apply(record.Record{"debug": 1, "image": 2})
	drop.Apply(record.Record{"image": 2}) // fails: "debug" is absent

	stats := metrics.GetStats()
	fmt.Printf("applies=%d errors=%d\n", stats.ApplyCount, stats.ApplyErrors)
	// Output: applies=2 errors=1
}

// Example_frames demonstrates serializing a volume into a self-describing
// compressed frame and back.
func Example_frames() {
	vol := volume.MustFromData([]int16{1, 2, 3, 4, 5, 6}, 2, 3)

	frame, err := codec.Encode(vol, codec.Zstd{})
	if err != nil {
		log.Fatal(err)
	}

	back, err := codec.Decode[int16](frame)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(back.Shape(), back.At(1, 2))
	// Output: [2 3] 6
}
