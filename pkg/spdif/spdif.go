// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package spdif

// 将已经切分好的压缩音频帧（AC3、E-AC3、DTS、MLP/TrueHD）封装成IEC 61937 burst，
// 使得下游（S/PDIF或HDMI音频通道的接收端）能以压缩码流而非PCM的方式识别并解码
//
// <IEC 61937-1, IEC 61937-2>
//
// burst格式：8字节头 + payload + 0填充，总大小由codec决定
// --------------------------------
// syncword1 [16b] 0xf872
// syncword2 [16b] 0x4e1f
// data type [16b]
// length    [16b] 单位bit或字节，由codec决定
// --------------------------------

// Format 输出的S/PDIF承载格式，决定16bit word的字节序
type Format int

const (
	// FormatSpdifLe 16bit小端
	FormatSpdifLe Format = iota
	// FormatSpdifBe 16bit大端
	FormatSpdifBe
)

const (
	headerSize = 8

	syncword1 = 0xf872
	syncword2 = 0x4e1f

	// IEC 61937-2 data type
	dataTypeAc3    = 0x01
	dataTypeDts1   = 0x0B // 512采样点
	dataTypeDts2   = 0x0C // 1024采样点
	dataTypeDts3   = 0x0D // 2048采样点
	dataTypeEac3   = 0x15
	dataTypeTruehd = 0x16
)

func (f Format) ReadableString() string {
	switch f {
	case FormatSpdifLe:
		return "spdifl"
	case FormatSpdifBe:
		return "spdifb"
	}
	return "unknown"
}
