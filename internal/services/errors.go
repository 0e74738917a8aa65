package services

import "errors"

// ErrReadFailure marks a read that produced no usable bytes: a nil or
// invalid image handle, a negative offset, or an offset at or past the end
// of the image. The detection path absorbs it into a fail-open verdict;
// it never escalates out of DetectEncryption.
var ErrReadFailure = errors.New("image read failure")
