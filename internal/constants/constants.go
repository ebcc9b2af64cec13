package constants

const Nc = 3.

const FmGeV = 5.068 // 1 fm = 5.068 GeV^{-1}

const LambdaQCD = 0.156 // [GeV]
const Nf = 4

// optical Glauber limit is only trusted above this mass number
const MinGlauberA = 100

const ThicknessBMax = 100. // [GeV^{-1}]
const ThicknessBStep = 0.1 // [GeV^{-1}]

const WoodsSaxonDelta = 0.54 // [fm]
