// Copyright 2026, Chef.  All rights reserved.
// https://github.com/q191201771/spdif
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package spdif

import (
	"github.com/q191201771/spdif/pkg/base"
)

// TrueHD不能直接按IEC 61937 burst承载，需要先重新打包成MAT帧：
// 24个输入帧按固定2560字节的间距排列，帧间用0填充补齐，
// 外加固定位置的start/middle/end marker，整个MAT帧再作为一个burst输出。
//
// MAT帧格式没有公开文档，marker常量以及偏移取自ffmpeg的libavformat/spdifenc.c，
// 实测可用。24个输入帧与2560字节间距是否必须严格对齐，未经证实

const (
	// 相邻两个TrueHD帧在MAT帧内的起始偏移之差
	truehdFrameOffset = 2560

	truehdNbFrames = 24

	truehdBurstSize = truehdNbFrames * truehdFrameOffset // 61440
)

var (
	matStartCode = []byte{
		0x07, 0x9E, 0x00, 0x03, 0x84, 0x01, 0x01, 0x01, 0x80, 0x00,
		0x56, 0xA5, 0x3B, 0xF4, 0x81, 0x83, 0x49, 0x80, 0x77, 0xE0,
	}
	matMiddleCode = []byte{
		0xC3, 0xC1, 0x42, 0x49, 0x3B, 0xFA,
		0x82, 0x83, 0x49, 0x80, 0x77, 0xE0,
	}
	matEndCode = []byte{
		0xC3, 0xC2, 0xC0, 0xC4, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x97, 0x11,
	}
)

func (m *Muxer) writeTruehd(frame base.AvFrame) (bool, error) {
	if !m.writer.inProgress() {
		if err := m.writer.init(truehdBurstSize, frame, truehdBurstSize/16); err != nil {
			return false, err
		}
	}

	padding := 0
	switch m.truehdFrameCount {
	case 0:
		if err := m.writer.writeData(matStartCode, true); err != nil {
			return false, err
		}
		// 第一个MAT帧的填充需要额外吃掉burst头和start marker
		padding = truehdFrameOffset - len(frame.Payload) - len(matStartCode) - headerSize
	case 11:
		// 预留4字节，使middle marker刚好落在(2560*12 - 4)偏移处
		padding = truehdFrameOffset - len(frame.Payload) - 4
	case 12:
		if err := m.writer.writeData(matMiddleCode, true); err != nil {
			return false, err
		}
		padding = truehdFrameOffset - len(frame.Payload) - (len(matMiddleCode) - 4)
	case truehdNbFrames - 1:
		// end marker落在(2560*24 - 24)偏移处
		padding = truehdFrameOffset - len(frame.Payload) - 24

		if padding < 0 || len(frame.Payload)+padding > m.writer.remaining() {
			return false, base.NewErrSpdifMalformedFrame("truehd frame too large for mat frame")
		}

		if err := m.writer.writeData(frame.Payload, true); err != nil {
			return false, err
		}
		if err := m.writer.writePadding(padding); err != nil {
			return false, err
		}
		if err := m.writer.writeData(matEndCode, true); err != nil {
			return false, err
		}
		m.writer.finalize(dataTypeTruehd, 1 /* 单位字节 */)
		m.truehdFrameCount = 0
		return true, nil
	default:
		padding = truehdFrameOffset - len(frame.Payload)
	}

	// 单个超大帧会破坏整个MAT帧的排列，只能由上层丢弃累积状态重来
	if padding < 0 || len(frame.Payload)+padding > m.writer.remaining() {
		return false, base.NewErrSpdifMalformedFrame("truehd frame too large for mat frame")
	}

	if err := m.writer.writeData(frame.Payload, true); err != nil {
		return false, err
	}
	if err := m.writer.writePadding(padding); err != nil {
		return false, err
	}
	m.truehdFrameCount++
	return false, nil
}
