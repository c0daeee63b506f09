// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package meadow

import (
	"github.com/SoftbearStudios/meadow/world"
	jsoniter "github.com/json-iterator/go"
	"reflect"
	"unsafe"
)

// JSON is the codec shared with the instantiation layer.
// Make sure functions get run first
var JSON = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(world.Angle(0)).String(), encodeAngle, emptyAngle)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Category(0)).String(), encodeCategory, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Biome(0)).String(), encodeBiome, emptyBiome)

	// Decoders
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(world.Angle(0)).String(), decodeAngle)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Category(0)).String(), decodeCategory)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Biome(0)).String(), decodeBiome)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       false, // cached layouts must decode bit for bit
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

// MarshalLayout encodes layout for the instantiation layer.
func MarshalLayout(layout *Layout) ([]byte, error) {
	return JSON.Marshal(layout)
}

// UnmarshalLayout decodes a layout written by MarshalLayout.
func UnmarshalLayout(buf []byte) (layout Layout, err error) {
	err = JSON.Unmarshal(buf, &layout)
	return
}

func encodeAngle(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	angle := *(*world.Angle)(ptr)
	stream.WriteFloat32(angle.Float())
}

func emptyAngle(ptr unsafe.Pointer) bool {
	return *(*world.Angle)(ptr) == 0
}

func decodeAngle(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	f := iter.ReadFloat32()
	*(*world.Angle)(ptr) = world.Angle(f)
}

func encodeCategory(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*(*Category)(ptr)).String())
}

func decodeCategory(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	*(*Category)(ptr) = ParseCategory(iter.ReadString())
}

func encodeBiome(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*(*Biome)(ptr)).String())
}

func emptyBiome(ptr unsafe.Pointer) bool {
	return *(*Biome)(ptr) == BiomeNone
}

func decodeBiome(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	*(*Biome)(ptr) = ParseBiome(iter.ReadString())
}
