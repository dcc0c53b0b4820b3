// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-maintained MUS serializers for the domain types. Field order is part of
// the stored format; append new fields at the end and never reorder.
var (
	IDMUS                   = idSer{}
	RequestIntentMUS        = requestIntentSer{}
	SubRequestMUS           = subRequestSer{}
	ClassificationResultMUS = classificationResultSer{}
	SimilarEmailMUS         = similarEmailSer{}
	EmailRecordMUS          = emailRecordSer{}
)

type idSer struct{}

func (idSer) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idSer) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// Timestamps are stored as microseconds since the Unix epoch.

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func marshalStringSlice(ss []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(ss), bs)
	for _, s := range ss {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func unmarshalStringSlice(bs []byte) (ss []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	ss = make([]string, 0, length)
	for range length {
		var s string
		var sn int
		s, sn, err = ord.String.Unmarshal(bs[n:])
		n += sn
		if err != nil {
			return nil, n, err
		}
		ss = append(ss, s)
	}
	return ss, n, nil
}

func sizeStringSlice(ss []string) (size int) {
	size = varint.Int.Size(len(ss))
	for _, s := range ss {
		size += ord.String.Size(s)
	}
	return size
}

func marshalFloat32Slice(vs []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(vs), bs)
	for _, v := range vs {
		n += raw.Float32.Marshal(v, bs[n:])
	}
	return n
}

func unmarshalFloat32Slice(bs []byte) (vs []float32, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	vs = make([]float32, 0, length)
	for range length {
		var v float32
		var vn int
		v, vn, err = raw.Float32.Unmarshal(bs[n:])
		n += vn
		if err != nil {
			return nil, n, err
		}
		vs = append(vs, v)
	}
	return vs, n, nil
}

func sizeFloat32Slice(vs []float32) int {
	return varint.Int.Size(len(vs)) + len(vs)*raw.Float32.Size(0)
}

type requestIntentSer struct{}

func (requestIntentSer) Marshal(v RequestIntent, bs []byte) (n int) {
	n = ord.String.Marshal(v.Intent, bs)
	n += ord.String.Marshal(v.Reasoning, bs[n:])
	n += raw.Float64.Marshal(v.ConfidenceScore, bs[n:])
	return n
}

func (requestIntentSer) Unmarshal(bs []byte) (v RequestIntent, n int, err error) {
	v.Intent, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	var fn int
	v.Reasoning, fn, err = ord.String.Unmarshal(bs[n:])
	n += fn
	if err != nil {
		return v, n, err
	}
	v.ConfidenceScore, fn, err = raw.Float64.Unmarshal(bs[n:])
	n += fn
	return v, n, err
}

func (requestIntentSer) Size(v RequestIntent) int {
	return ord.String.Size(v.Intent) + ord.String.Size(v.Reasoning) +
		raw.Float64.Size(v.ConfidenceScore)
}

type subRequestSer struct{}

func (subRequestSer) Marshal(v SubRequest, bs []byte) (n int) {
	n = ord.String.Marshal(v.SubRequest, bs)
	n += ord.String.Marshal(v.Reasoning, bs[n:])
	return n
}

func (subRequestSer) Unmarshal(bs []byte) (v SubRequest, n int, err error) {
	v.SubRequest, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	var fn int
	v.Reasoning, fn, err = ord.String.Unmarshal(bs[n:])
	n += fn
	return v, n, err
}

func (subRequestSer) Size(v SubRequest) int {
	return ord.String.Size(v.SubRequest) + ord.String.Size(v.Reasoning)
}

type classificationResultSer struct{}

func (classificationResultSer) Marshal(v ClassificationResult, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v.RequestIntents), bs)
	for _, ri := range v.RequestIntents {
		n += RequestIntentMUS.Marshal(ri, bs[n:])
	}
	n += varint.Int.Marshal(len(v.SubRequests), bs[n:])
	for _, sr := range v.SubRequests {
		n += SubRequestMUS.Marshal(sr, bs[n:])
	}
	return n
}

func (classificationResultSer) Unmarshal(bs []byte) (v ClassificationResult, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.RequestIntents = make([]RequestIntent, 0, length)
	for range length {
		var ri RequestIntent
		var rn int
		ri, rn, err = RequestIntentMUS.Unmarshal(bs[n:])
		n += rn
		if err != nil {
			return v, n, err
		}
		v.RequestIntents = append(v.RequestIntents, ri)
	}
	length, ln, err := varint.Int.Unmarshal(bs[n:])
	n += ln
	if err != nil {
		return v, n, err
	}
	v.SubRequests = make([]SubRequest, 0, length)
	for range length {
		var sr SubRequest
		var sn int
		sr, sn, err = SubRequestMUS.Unmarshal(bs[n:])
		n += sn
		if err != nil {
			return v, n, err
		}
		v.SubRequests = append(v.SubRequests, sr)
	}
	return v, n, nil
}

func (classificationResultSer) Size(v ClassificationResult) (size int) {
	size = varint.Int.Size(len(v.RequestIntents))
	for _, ri := range v.RequestIntents {
		size += RequestIntentMUS.Size(ri)
	}
	size += varint.Int.Size(len(v.SubRequests))
	for _, sr := range v.SubRequests {
		size += SubRequestMUS.Size(sr)
	}
	return size
}

type similarEmailSer struct{}

func (similarEmailSer) Marshal(v SimilarEmail, bs []byte) (n int) {
	n = ord.String.Marshal(v.Contents, bs)
	n += raw.Float32.Marshal(v.Score, bs[n:])
	return n
}

func (similarEmailSer) Unmarshal(bs []byte) (v SimilarEmail, n int, err error) {
	v.Contents, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	var fn int
	v.Score, fn, err = raw.Float32.Unmarshal(bs[n:])
	n += fn
	return v, n, err
}

func (similarEmailSer) Size(v SimilarEmail) int {
	return ord.String.Size(v.Contents) + raw.Float32.Size(v.Score)
}

type emailRecordSer struct{}

func (emailRecordSer) Marshal(r EmailRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.Contents, bs[n:])
	n += ClassificationResultMUS.Marshal(r.Classification, bs[n:])
	n += varint.Int.Marshal(len(r.SimilarEmails), bs[n:])
	for _, se := range r.SimilarEmails {
		n += SimilarEmailMUS.Marshal(se, bs[n:])
	}
	n += ord.String.Marshal(r.ReceiverAddress, bs[n:])
	n += marshalStringSlice(r.AttachmentNames, bs[n:])
	n += marshalFloat32Slice(r.Vector, bs[n:])
	n += IDMUS.Marshal(r.ContentHash, bs[n:])
	n += marshalTime(r.CreatedAt, bs[n:])
	n += marshalTime(r.InsertedAt, bs[n:])
	n += marshalTime(r.UpdatedAt, bs[n:])
	return n
}

func (emailRecordSer) Unmarshal(bs []byte) (r EmailRecord, n int, err error) {
	r.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return r, n, err
	}
	var fn int
	r.Contents, fn, err = ord.String.Unmarshal(bs[n:])
	n += fn
	if err != nil {
		return r, n, err
	}
	r.Classification, fn, err = ClassificationResultMUS.Unmarshal(bs[n:])
	n += fn
	if err != nil {
		return r, n, err
	}
	length, ln, err := varint.Int.Unmarshal(bs[n:])
	n += ln
	if err != nil {
		return r, n, err
	}
	r.SimilarEmails = make([]SimilarEmail, 0, length)
	for range length {
		var se SimilarEmail
		var sn int
		se, sn, err = SimilarEmailMUS.Unmarshal(bs[n:])
		n += sn
		if err != nil {
			return r, n, err
		}
		r.SimilarEmails = append(r.SimilarEmails, se)
	}
	r.ReceiverAddress, fn, err = ord.String.Unmarshal(bs[n:])
	n += fn
	if err != nil {
		return r, n, err
	}
	r.AttachmentNames, fn, err = unmarshalStringSlice(bs[n:])
	n += fn
	if err != nil {
		return r, n, err
	}
	r.Vector, fn, err = unmarshalFloat32Slice(bs[n:])
	n += fn
	if err != nil {
		return r, n, err
	}
	r.ContentHash, fn, err = IDMUS.Unmarshal(bs[n:])
	n += fn
	if err != nil {
		return r, n, err
	}
	r.CreatedAt, fn, err = unmarshalTime(bs[n:])
	n += fn
	if err != nil {
		return r, n, err
	}
	r.InsertedAt, fn, err = unmarshalTime(bs[n:])
	n += fn
	if err != nil {
		return r, n, err
	}
	r.UpdatedAt, fn, err = unmarshalTime(bs[n:])
	n += fn
	return r, n, err
}

func (emailRecordSer) Size(r EmailRecord) (size int) {
	size = IDMUS.Size(r.Id)
	size += ord.String.Size(r.Contents)
	size += ClassificationResultMUS.Size(r.Classification)
	size += varint.Int.Size(len(r.SimilarEmails))
	for _, se := range r.SimilarEmails {
		size += SimilarEmailMUS.Size(se)
	}
	size += ord.String.Size(r.ReceiverAddress)
	size += sizeStringSlice(r.AttachmentNames)
	size += sizeFloat32Slice(r.Vector)
	size += IDMUS.Size(r.ContentHash)
	size += sizeTime(r.CreatedAt)
	size += sizeTime(r.InsertedAt)
	size += sizeTime(r.UpdatedAt)
	return size
}
