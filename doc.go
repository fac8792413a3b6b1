/*
Command hg1g2 fits asteroid phase curves in the H, G1, G2 and H, G12
magnitude systems and estimates parameter uncertainties.

Contents

  Program overview
  Command line usage
  Input tables
  Configuration
  Algorithm outline


Program overview

Input is one or more text files of photometric observations of a single
object each.  Output is, per file, the fitted H, G1, G2 and H, G12
parameters, the rms of magnitude residuals, and optionally a table of
Monte Carlo uncertainty estimates.

Sample run:

  $ hg1g2 -u 1999XY.txt
  1999XY.txt: 34 observations
    H, G1, G2   15.0312   0.2874   0.2121  rms 0.031
               H       G1       G2
    mean        15.0315   0.2870   0.2123
    median      15.0314   0.2871   0.2122
    ...
    H, G12      15.0480   0.4116  rms 0.033  family 1


Command line usage

  hg1g2 [options] <obsfile> ...   fit phase curves of observations in files
  hg1g2 [options] -               fit observations from stdin
  hg1g2 -h                        display help
  hg1g2 -v                        display version and copyright

Options:

  -c <config-file>
  -m hg1g2|hg12|both
  -l phase|distances|vectors
  -rad
  -e <mag-err>
  -u
  -n <samples>
  -s <seed>

Files are fit concurrently but results are printed in command line order.
An error reading or fitting one file is reported in its output and does not
stop the others.


Input tables

Fields are separated by white space or commas.  Lines starting with # are
comments.  The -l option selects one of three layouts:

  phase       angle mag [err]
  distances   mag r delta sun-observer [err]
  vectors     mag sx sy sz ox oy oz [err]

With the phase layout magnitudes must already be reduced to unit distances.
Angles are in degrees unless -rad is given.  With the other layouts the
phase angle is computed from the geometry and apparent magnitudes are
reduced by 5 log10(r delta).  Vectors s and o are the sun-object and
observer-object vectors.

An err field, if present, must be present on every line and is the
magnitude error of the observation.  Otherwise every observation gets the
-e error, or 0.03 magnitude if none is given.  An error of zero is invalid.


Configuration

The -c option names a YAML file.  Options given on the command line override
the file.

  model: both
  layout: phase
  degrees: true
  uncertainty: false
  samples: 100000
  repeatable: true
  seed: 3
  magErr: 0.03
  families:
    - {b1: 0.7527, b0: 0.06164, g1: -0.9612, g0: 0.6270}
    - {b1: 0.9529, b0: 0.02162, g1: -0.6125, g0: 0.5572}

Families is the calibration table of the H, G12 system, G1 = b0 + b1 G12
and G2 = g0 + g1 G12.  The default is the two published calibrations
shown.  Runs are repeatable by default; with repeatable: false or -s 0 the
random source is seeded from the clock.


Algorithm outline

1.  Magnitudes are converted to flux, 10^(-0.4 mag), with flux errors
derived from the magnitude errors.

2.  Three basis functions of phase angle, φ1, φ2, φ3, are fixed tables of
linear pieces and clamped cubic splines valid from 0 to 150 degrees.
Observations outside that range are rejected.

3.  For H, G1, G2 the flux is fit by weighted linear least squares as
a1 φ1 + a2 φ2 + a3 φ3.  Then H = -2.5 log10(a1+a2+a3), G1 = a1/(a1+a2+a3)
and G2 = a2/(a1+a2+a3).

4.  For H, G12 each calibration family combines the basis into two
functions, the flux is fit to them, and the family with the smallest
residuals is kept.  H = -2.5 log10(a1), G12 = a2/a1.

5.  Uncertainty is estimated by drawing samples of the coefficients from
the normal distribution given by the fit covariance, converting each
sample to physical parameters, and reporting mean, median and the
percentiles at -3, -2, -1, +1, +2, +3 sigma.

-------------
Public domain.
*/
package main
