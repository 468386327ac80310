package convert

import (
    "bytes"
    "image"
    _ "image/gif"
    _ "image/jpeg"
    "image/png"

    _ "golang.org/x/image/bmp"
    _ "golang.org/x/image/tiff"
    _ "golang.org/x/image/webp"

    "github.com/thywilljoshua/pdf-image-captioner/internal/ai"
)

// Formats the captioning backends accept as is.
var passthroughFormats = map[string]string{
    "png":  "image/png",
    "jpeg": "image/jpeg",
    "webp": "image/webp",
}

// decodeImage returns nil when data is not a decodable raster image.
// Formats the backends do not accept are re-encoded as PNG.
func decodeImage(data []byte) *ai.Image {
    if len(data) == 0 {
        return nil
    }
    _, format, err := image.DecodeConfig(bytes.NewReader(data))
    if err != nil {
        return nil
    }
    if mt, ok := passthroughFormats[format]; ok {
        return &ai.Image{MIMEType: mt, Data: data}
    }
    img, _, err := image.Decode(bytes.NewReader(data))
    if err != nil {
        return nil
    }
    var buf bytes.Buffer
    if err := png.Encode(&buf, img); err != nil {
        return nil
    }
    return &ai.Image{MIMEType: "image/png", Data: buf.Bytes()}
}
