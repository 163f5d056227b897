package onnx

// meanPool averages hidden states over the positions whose mask is 1.
// hidden is [size*seqLen*dim], mask is [size*seqLen]; the result holds one
// dim-length vector per row. Rows with no unmasked positions stay zero.
func meanPool(hidden []float32, mask []int64, size, seqLen, dim int64) [][]float32 {
	out := make([][]float32, size)
	for b := range size {
		vec := make([]float32, dim)
		var n float32
		for s := range seqLen {
			if mask[b*seqLen+s] != 1 {
				continue
			}
			n++
			tok := hidden[(b*seqLen+s)*dim:]
			for d := range dim {
				vec[d] += tok[d]
			}
		}
		if n > 0 {
			for d := range vec {
				vec[d] /= n
			}
		}
		out[b] = vec
	}
	return out
}
