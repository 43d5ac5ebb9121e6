// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

type AvFramePt int

const (
	AvFramePtUnknown AvFramePt = -1
	AvFramePtAc3     AvFramePt = 0
	AvFramePtEac3    AvFramePt = 1
	AvFramePtMlp     AvFramePt = 2
	AvFramePtTruehd  AvFramePt = 3
	AvFramePtDts     AvFramePt = 4
)

// AvFrame 一个压缩音频的访问单元（access unit），也即一帧
//
// 注意，Payload的内存块由调用方持有，函数调用结束后，库内部不持有这块内存
type AvFrame struct {
	Pts int64
	Dts int64

	// NbSamples 该帧的时长，单位采样点数，不知道时为0
	NbSamples int

	PayloadType AvFramePt
	Payload     []byte
}

func (a AvFramePt) ReadableString() string {
	switch a {
	case AvFramePtUnknown:
		return "unknown"
	case AvFramePtAc3:
		return "ac3"
	case AvFramePtEac3:
		return "eac3"
	case AvFramePtMlp:
		return "mlp"
	case AvFramePtTruehd:
		return "truehd"
	case AvFramePtDts:
		return "dts"
	}
	return ""
}
