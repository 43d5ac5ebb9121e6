// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"errors"
	"fmt"
)

// ----- 通用的 ---------------------------------------------------------------------------------------------------------

var ErrShortBuffer = errors.New("spdif: buffer too short")

// ----- pkg/a52 -------------------------------------------------------------------------------------------------------

var (
	ErrA52InvalidSyncword = errors.New("spdif.a52: invalid syncword")
	ErrA52InvalidBsid     = errors.New("spdif.a52: invalid bsid")
	ErrA52InvalidHeader   = errors.New("spdif.a52: invalid header")
)

// ----- pkg/dts -------------------------------------------------------------------------------------------------------

var ErrDtsInvalidSyncword = errors.New("spdif.dts: invalid syncword")

// ----- pkg/spdif -----------------------------------------------------------------------------------------------------

var (
	// ErrSpdifUnsupportedConfig 输入codec或输出格式不在支持范围内，创建muxer时返回
	ErrSpdifUnsupportedConfig = errors.New("spdif.spdif: unsupported codec or output format")

	// ErrSpdifMalformedFrame 输入帧不合法（header解析失败、帧大小超出burst容量等），
	// 返回该错误时，当前burst以及codec相关的累积状态已被丢弃
	ErrSpdifMalformedFrame = errors.New("spdif.spdif: malformed frame")

	// ErrSpdifWriteOverflow 写入越过burst容量，对于合法输入不应该出现
	ErrSpdifWriteOverflow = errors.New("spdif.spdif: write past burst capacity")
)

func NewErrSpdifMalformedFrame(msg string) error {
	return fmt.Errorf("%w. %s", ErrSpdifMalformedFrame, msg)
}
