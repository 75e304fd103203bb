package gzipcompressor

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"io/ioutil"
)

func BytesToBytes(d []byte) ([]byte, error) {
	var buff bytes.Buffer
	gzw := gzip.NewWriter(&buff)
	if _, err := gzw.Write(d); err != nil {
		return []byte{}, err
	}
	if err := gzw.Close(); err != nil {
		return []byte{}, err
	}
	return buff.Bytes(), nil
}

// CompressData gzips d and base64-encodes the result, the form EC2 accepts as already-encoded user data.
func CompressData(d []byte) (string, error) {
	compressed, err := BytesToBytes(d)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(compressed), nil
}

func CompressString(str string) (string, error) {
	return CompressData([]byte(str))
}

func DecompressString(encoded string) (string, error) {
	compressed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	gzr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", err
	}
	defer gzr.Close()
	d, err := ioutil.ReadAll(gzr)
	if err != nil {
		return "", err
	}
	return string(d), nil
}
