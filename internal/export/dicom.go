package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/mrsinham/blockforge/internal/texture"
	"github.com/mrsinham/blockforge/internal/util"
)

const (
	// Secondary Capture Image Storage
	secondaryCaptureSOPClass = "1.2.840.10008.5.1.4.1.1.7"
	explicitVRLittleEndian   = "1.2.840.10008.1.2.1"
)

// DICOMInfo identifies the texture written by WriteDICOM. UIDs are derived
// from Name and Seed, so rewriting the same texture yields the same file.
type DICOMInfo struct {
	Name string
	Seed int64
	// Pack groups every texture of one run into a single study.
	Pack string
}

// WriteDICOM creates dir if needed and writes the canvas as an RGB Secondary
// Capture image named <name>.dcm. Alpha is composited over black.
func WriteDICOM(dir string, info DICOMInfo, c *texture.Canvas) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, info.Name+".dcm")

	pack := info.Pack
	if pack == "" {
		pack = "blockforge"
	}
	studyUID := util.DeterministicUID(pack + "/study")
	seriesUID := util.DeterministicUID(pack + "/series")
	sopInstanceUID := util.DeterministicUID(fmt.Sprintf("%s/%d/instance", info.Name, info.Seed))

	elements := []*dicom.Element{
		mustNewElement(tag.MediaStorageSOPClassUID, []string{secondaryCaptureSOPClass}),
		mustNewElement(tag.MediaStorageSOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.TransferSyntaxUID, []string{explicitVRLittleEndian}),
		mustNewElement(tag.SOPClassUID, []string{secondaryCaptureSOPClass}),
		mustNewElement(tag.SOPInstanceUID, []string{sopInstanceUID}),
		mustNewElement(tag.StudyInstanceUID, []string{studyUID}),
		mustNewElement(tag.SeriesInstanceUID, []string{seriesUID}),
		mustNewElement(tag.Modality, []string{"OT"}),
		mustNewElement(tag.ConversionType, []string{"SYN"}),
		mustNewElement(tag.PatientName, []string{"BLOCKFORGE^" + info.Name}),
		mustNewElement(tag.PatientID, []string{info.Name}),
		mustNewElement(tag.StudyDescription, []string{pack}),
		mustNewElement(tag.SeriesDescription, []string{"Block textures"}),
		mustNewElement(tag.ImageComments, []string{"seed " + strconv.FormatInt(info.Seed, 10)}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
		mustNewElement(tag.Rows, []int{texture.Size}),
		mustNewElement(tag.Columns, []int{texture.Size}),
		mustNewElement(tag.SamplesPerPixel, []int{3}),
		mustNewElement(tag.PhotometricInterpretation, []string{"RGB"}),
		mustNewElement(tag.PlanarConfiguration, []int{0}),
		mustNewElement(tag.BitsAllocated, []int{8}),
		mustNewElement(tag.BitsStored, []int{8}),
		mustNewElement(tag.HighBit, []int{7}),
		mustNewElement(tag.PixelRepresentation, []int{0}),
		mustNewElement(tag.PixelData, dicom.PixelDataInfo{
			Frames: []*frame.Frame{
				{
					Encapsulated: false,
					NativeData:   rgbFrame(c),
				},
			},
		}),
	}

	if err := writeDatasetToFile(path, dicom.Dataset{Elements: elements}); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// rgbFrame converts the canvas to interleaved 8-bit RGB samples, scaling each
// channel by alpha.
func rgbFrame(c *texture.Canvas) *frame.NativeFrame[uint8] {
	pixels := texture.Size * texture.Size
	nativeFrame := frame.NewNativeFrame[uint8](8, texture.Size, texture.Size, pixels, 3)
	for y := 0; y < texture.Size; y++ {
		for x := 0; x < texture.Size; x++ {
			p := c.At(x, y)
			i := (y*texture.Size + x) * 3
			nativeFrame.RawData[i] = premultiply(p.R, p.A)
			nativeFrame.RawData[i+1] = premultiply(p.G, p.A)
			nativeFrame.RawData[i+2] = premultiply(p.B, p.A)
		}
	}
	return nativeFrame
}

func premultiply(v, a uint8) uint8 {
	return uint8(uint16(v) * uint16(a) / 255)
}

// writeDatasetToFile writes a DICOM dataset to a file
func writeDatasetToFile(filename string, ds dicom.Dataset, opts ...dicom.WriteOption) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return dicom.Write(f, ds, opts...)
}

func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}
